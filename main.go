package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tachuswebservices/manglasports-sub001/cloudinary"
	"github.com/tachuswebservices/manglasports-sub001/config"
	paymentControllers "github.com/tachuswebservices/manglasports-sub001/controllers/payment"
	"github.com/tachuswebservices/manglasports-sub001/email"
	"github.com/tachuswebservices/manglasports-sub001/logger"
	"github.com/tachuswebservices/manglasports-sub001/middleware"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"github.com/tachuswebservices/manglasports-sub001/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	slogger := logger.New(cfg.Server.LogLevel)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		slogger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.Feature{},
		&models.Specification{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.BlogPost{},
		&models.BlogComment{},
		&models.Event{},
	); err != nil {
		slogger.Error("auto migrate failed", "error", err)
		os.Exit(1)
	}

	mailer := email.NewSMTPSender(&cfg.SMTP, slogger)
	uploader := cloudinary.NewClient(&cfg.Cloudinary)
	payments := paymentControllers.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(slogger))
	r.Use(middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupRoutes(r, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Logger:   slogger,
		Mailer:   mailer,
		Uploader: uploader,
		Payments: payments,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slogger.Info("server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slogger.Error("shutdown failed", "error", err)
	}
}
