package notify

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// StatusUpdate carries everything needed to tell a donor about a decision on
// their donation.
type StatusUpdate struct {
	DonorName  string
	DonorEmail string
	DonationID string
	Summary    string
	NewStatus  string
	AdminNotes string
}

// NewDonationAlert notifies the platform admins that a donation was submitted.
type NewDonationAlert struct {
	DonorName   string
	DonorEmail  string
	DonationID  string
	Summary     string
	Description string
}

// Notifier is the outbound notification contract. Delivery is best-effort:
// callers log failures and never propagate them.
type Notifier interface {
	SendStatusUpdate(ctx context.Context, data StatusUpdate) error
	SendNewDonationAlert(ctx context.Context, data NewDonationAlert) error
}

// EmailNotifier sends donor and admin notifications through SendGrid.
type EmailNotifier struct {
	client     *sendgrid.Client
	from       string
	fromName   string
	adminEmail string
}

// NewEmailNotifier reads SendGrid configuration from the environment.
// With no SENDGRID_API_KEY set the notifier is disabled and every send is a
// logged no-op, which keeps local development working without credentials.
func NewEmailNotifier() *EmailNotifier {
	apiKey := os.Getenv("SENDGRID_API_KEY")

	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "noreply@givehope.org"
	}
	fromName := os.Getenv("EMAIL_FROM_NAME")
	if fromName == "" {
		fromName = "GiveHope Donations"
	}

	n := &EmailNotifier{
		from:       from,
		fromName:   fromName,
		adminEmail: os.Getenv("ADMIN_EMAIL"),
	}
	if apiKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set, email notifications disabled")
		return n
	}
	n.client = sendgrid.NewSendClient(apiKey)
	return n
}

// SendStatusUpdate emails the donor about an approve/reject decision.
func (n *EmailNotifier) SendStatusUpdate(ctx context.Context, data StatusUpdate) error {
	if data.DonorEmail == "" {
		return fmt.Errorf("donor email is empty for donation %s", data.DonationID)
	}

	subject := fmt.Sprintf("Your donation was %s", strings.ToLower(data.NewStatus))
	htmlContent, textContent, err := renderStatusUpdate(data)
	if err != nil {
		return fmt.Errorf("rendering status update email: %w", err)
	}

	return n.send(data.DonorName, data.DonorEmail, subject, htmlContent, textContent)
}

// SendNewDonationAlert emails the configured admin address about a new
// submission so it can be reviewed.
func (n *EmailNotifier) SendNewDonationAlert(ctx context.Context, data NewDonationAlert) error {
	if n.adminEmail == "" {
		log.Println("Warning: ADMIN_EMAIL not set, skipping new donation alert")
		return nil
	}

	subject := fmt.Sprintf("New donation: %s", data.Summary)
	htmlContent, textContent, err := renderNewDonationAlert(data)
	if err != nil {
		return fmt.Errorf("rendering donation alert email: %w", err)
	}

	return n.send("", n.adminEmail, subject, htmlContent, textContent)
}

func (n *EmailNotifier) send(toName, toEmail, subject, htmlContent, textContent string) error {
	if n.client == nil {
		log.Printf("Warning: email notifier disabled, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail(n.fromName, n.from)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)

	response, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode != 202 {
		return fmt.Errorf("unexpected SendGrid status code: %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

// Ensure EmailNotifier implements Notifier
var _ Notifier = (*EmailNotifier)(nil)
