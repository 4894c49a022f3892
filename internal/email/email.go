// Package email sends transactional mail for order events. Sending is
// best-effort: callers fire it from a goroutine and a failure only logs.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"github.com/skyriting/skyriting/internal/domain"
)

type Sender interface {
	SendOrderConfirmation(to string, order *domain.Order) error
	SendOrderStatusUpdate(to string, order *domain.Order) error
}

var statusMessages = map[domain.OrderStatus]string{
	domain.OrderConfirmed: "Your order has been confirmed and is being prepared.",
	domain.OrderShipped:   "Great news! Your order has been shipped and is on the way.",
	domain.OrderDelivered: "Your order has been delivered. We hope you love it!",
	domain.OrderCancelled: "Your order has been cancelled as requested.",
}

type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	log      *logrus.Logger
}

func NewSMTPSender(host, port, username, password string, log *logrus.Logger) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     username,
		log:      log,
	}
}

func (s *SMTPSender) SendOrderConfirmation(to string, order *domain.Order) error {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, confirmationData(order, s.from)); err != nil {
		return fmt.Errorf("rendering confirmation email: %w", err)
	}
	subject := fmt.Sprintf("Order Confirmation - #%s", order.ID)
	return s.send(to, subject, body.Bytes())
}

func (s *SMTPSender) SendOrderStatusUpdate(to string, order *domain.Order) error {
	msg, ok := statusMessages[order.Status]
	if !ok {
		msg = "Your order status has been updated."
	}

	var body bytes.Buffer
	err := statusTmpl.Execute(&body, map[string]any{
		"OrderID": order.ID.String(),
		"Status":  string(order.Status),
		"Message": msg,
	})
	if err != nil {
		return fmt.Errorf("rendering status email: %w", err)
	}
	subject := fmt.Sprintf("Order #%s - Status Update", order.ID)
	return s.send(to, subject, body.Bytes())
}

func (s *SMTPSender) send(to, subject string, html []byte) error {
	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(html)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(s.host+":"+s.port, auth, s.from, []string{to}, msg.Bytes()); err != nil {
		s.log.WithError(err).WithField("to", to).Warn("email send failed")
		return err
	}
	return nil
}

func confirmationData(order *domain.Order, supportEmail string) map[string]any {
	return map[string]any{
		"OrderID":      order.ID.String(),
		"Date":         order.CreatedAt.Format("January 2, 2006"),
		"Status":       string(order.Status),
		"Items":        order.Items,
		"Total":        fmt.Sprintf("%.2f", order.TotalAmount),
		"SupportEmail": supportEmail,
	}
}

// Noop is used when SMTP is not configured.
type Noop struct{}

func (Noop) SendOrderConfirmation(string, *domain.Order) error { return nil }
func (Noop) SendOrderStatusUpdate(string, *domain.Order) error { return nil }

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #000; color: #fff; padding: 20px; text-align: center;">
      <h1>SKYRITING</h1>
      <p>Order Confirmation</p>
    </div>
    <p>Thank you for your order!</p>
    <div style="background: #f9f9f9; padding: 20px;">
      <h2>Order #{{.OrderID}}</h2>
      <p><strong>Date:</strong> {{.Date}}</p>
      <p><strong>Status:</strong> {{.Status}}</p>
      <h3>Items:</h3>
      {{range .Items}}
      <div style="border-bottom: 1px solid #ddd; padding: 10px 0;">
        <p><strong>{{.Name}}</strong></p>
        <p>Quantity: {{.Quantity}} &times; ${{printf "%.2f" .Price}}</p>
      </div>
      {{end}}
      <p style="font-size: 20px; font-weight: bold; color: #4CAF50;">Total: ${{.Total}}</p>
    </div>
    <p style="text-align: center; color: #666;">Questions? Contact us at {{.SupportEmail}}</p>
  </div>
</body>
</html>`))

var statusTmpl = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #000; color: #fff; padding: 20px; text-align: center;">
      <h1>SKYRITING</h1>
      <p>Order Update</p>
    </div>
    <div style="background: #f0f8ff; padding: 20px; border-left: 4px solid #4CAF50;">
      <h2>Order #{{.OrderID}}</h2>
      <p><strong>New Status:</strong> {{.Status}}</p>
      <p>{{.Message}}</p>
    </div>
    <p>Thank you for shopping with Skyriting!</p>
  </div>
</body>
</html>`))
