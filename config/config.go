package config

import (
	"errors"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	SMTP       SMTPConfig
	Cloudinary CloudinaryConfig
	Razorpay   RazorpayConfig
}

type ServerConfig struct {
	Port            string
	LogLevel        string
	FrontendBaseURL string
}

type DatabaseConfig struct {
	DSN string
}

type JWTConfig struct {
	Secret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

// Load reads configuration from the environment. JWT_SECRET is required and
// carries no built-in fallback; everything else has local-dev defaults for
// non-secret values.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	_ = viper.BindEnv("port", "PORT")
	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("frontend_base_url", "FRONTEND_BASE_URL")
	_ = viper.BindEnv("database_url", "DATABASE_URL")
	_ = viper.BindEnv("jwt_secret", "JWT_SECRET")
	_ = viper.BindEnv("smtp_host", "SMTP_HOST")
	_ = viper.BindEnv("smtp_port", "SMTP_PORT")
	_ = viper.BindEnv("email_user", "EMAIL_USER")
	_ = viper.BindEnv("email_password", "EMAIL_PASSWORD")
	_ = viper.BindEnv("email_from", "EMAIL_FROM")
	_ = viper.BindEnv("cloudinary_cloud_name", "CLOUDINARY_CLOUD_NAME")
	_ = viper.BindEnv("cloudinary_api_key", "CLOUDINARY_API_KEY")
	_ = viper.BindEnv("cloudinary_api_secret", "CLOUDINARY_API_SECRET")
	_ = viper.BindEnv("cloudinary_folder", "CLOUDINARY_FOLDER")
	_ = viper.BindEnv("razorpay_key_id", "RAZORPAY_KEY_ID")
	_ = viper.BindEnv("razorpay_key_secret", "RAZORPAY_KEY_SECRET")

	secret := viper.GetString("jwt_secret")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getStringDefault("port", "8080"),
			LogLevel:        getStringDefault("log_level", "info"),
			FrontendBaseURL: getStringDefault("frontend_base_url", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			DSN: getStringDefault("database_url",
				"host=localhost user=postgres password=postgres dbname=manglasports port=5432 sslmode=disable"),
		},
		JWT: JWTConfig{Secret: secret},
		SMTP: SMTPConfig{
			Host:     getStringDefault("smtp_host", "smtp.gmail.com"),
			Port:     getIntDefault("smtp_port", 587),
			User:     viper.GetString("email_user"),
			Password: viper.GetString("email_password"),
			From:     getStringDefault("email_from", viper.GetString("email_user")),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: viper.GetString("cloudinary_cloud_name"),
			APIKey:    viper.GetString("cloudinary_api_key"),
			APISecret: viper.GetString("cloudinary_api_secret"),
			Folder:    getStringDefault("cloudinary_folder", "manglasports"),
		},
		Razorpay: RazorpayConfig{
			KeyID:     viper.GetString("razorpay_key_id"),
			KeySecret: viper.GetString("razorpay_key_secret"),
		},
	}

	return cfg, nil
}

func getStringDefault(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func getIntDefault(key string, fallback int) int {
	if v := viper.GetString(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
