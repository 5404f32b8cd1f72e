package email

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tachuswebservices/manglasports-sub001/config"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gopkg.in/gomail.v2"
)

// Sender delivers one HTML mail. Handlers depend on this interface so tests
// can record sends instead of dialing SMTP.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender sends over a single SMTP submission connection per message.
// No queue, no retry: a failure surfaces synchronously to the caller.
type SMTPSender struct {
	cfg    *config.SMTPConfig
	logger *slog.Logger
}

func NewSMTPSender(cfg *config.SMTPConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	if s.cfg.Host == "" || s.cfg.User == "" || s.cfg.From == "" {
		return fmt.Errorf("email config missing")
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("email sent", slog.String("to", to), slog.String("subject", subject))
	}
	return nil
}

// VerificationBody builds the signup verification mail.
func VerificationBody(name, verifyURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937;">
  <div style="max-width: 520px; margin: 24px auto; background: #ffffff; border-radius: 12px; padding: 24px; border: 1px solid #e5e7eb;">
    <h2>Welcome to Mangla Sports, %s</h2>
    <p>Confirm your email address to activate your account:</p>
    <p><a href="%s" style="display:inline-block;padding:12px 20px;background:#22c55e;color:#fff;text-decoration:none;border-radius:8px;font-weight:bold;">Verify Email</a></p>
    <p style="font-size:12px;color:#6b7280;">The link is valid for 24 hours. If you did not sign up, ignore this mail.</p>
  </div>
</body>
</html>`, name, verifyURL)
}

// PasswordResetBody builds the forgot-password mail.
func PasswordResetBody(name, resetURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937;">
  <div style="max-width: 520px; margin: 24px auto; background: #ffffff; border-radius: 12px; padding: 24px; border: 1px solid #e5e7eb;">
    <h2>Password reset</h2>
    <p>Hi %s, use the link below to choose a new password:</p>
    <p><a href="%s" style="display:inline-block;padding:12px 20px;background:#0f172a;color:#fff;text-decoration:none;border-radius:8px;font-weight:bold;">Reset Password</a></p>
    <p style="font-size:12px;color:#6b7280;">The link is valid for 1 hour. If you did not request a reset, ignore this mail.</p>
  </div>
</body>
</html>`, name, resetURL)
}

// InvoiceBody builds the order confirmation mail with an item table.
func InvoiceBody(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:8px;border-bottom:1px solid #e5e7eb;">%s</td><td style="padding:8px;border-bottom:1px solid #e5e7eb;text-align:center;">%d</td><td style="padding:8px;border-bottom:1px solid #e5e7eb;text-align:right;">₹%.2f</td></tr>`,
			item.ProductName, item.Quantity, item.Price*float64(item.Quantity)))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937;">
  <div style="max-width: 600px; margin: 24px auto; background: #ffffff; border-radius: 12px; padding: 24px; border: 1px solid #e5e7eb;">
    <h2>Thanks for your order</h2>
    <p>Order reference: <strong>%s</strong></p>
    <table style="width:100%%;border-collapse:collapse;">
      <tr><th style="text-align:left;padding:8px;">Item</th><th style="padding:8px;">Qty</th><th style="text-align:right;padding:8px;">Amount</th></tr>
      %s
    </table>
    <p style="text-align:right;font-size:18px;font-weight:bold;">Total: ₹%.2f</p>
  </div>
</body>
</html>`, order.OrderRef, rows.String(), order.TotalAmount)
}

// StatusUpdateBody builds the fulfillment status mail for one item.
func StatusUpdateBody(orderRef string, item *models.OrderItem) string {
	courier := ""
	if item.CourierName != "" {
		courier = fmt.Sprintf(`<p>Courier: %s, tracking number %s</p>`, item.CourierName, item.TrackingNumber)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937;">
  <div style="max-width: 520px; margin: 24px auto; background: #ffffff; border-radius: 12px; padding: 24px; border: 1px solid #e5e7eb;">
    <h2>Order update</h2>
    <p>Your item <strong>%s</strong> from order <strong>%s</strong> is now <strong>%s</strong>.</p>
    %s
  </div>
</body>
</html>`, item.ProductName, orderRef, item.Status, courier)
}

// TestBody builds the admin test mail.
func TestBody() string {
	return `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <p>This is a test email from the Mangla Sports backend. SMTP settings are working.</p>
</body>
</html>`
}
