package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/leadgate/api/internal/leads"
	"github.com/leadgate/api/pkg/logging"
)

// LeadMailer composes and sends the new-lead notification email. Delivery is
// best-effort: a missing transport is a no-op and a failed send is logged and
// reported only through the result. Exactly one attempt per lead, no retries.
type LeadMailer struct {
	sender  EmailSender
	toEmail string
	toName  string
	logger  *logging.Logger
}

// NewLeadMailer creates a mailer delivering to the configured operator address.
func NewLeadMailer(sender EmailSender, toEmail, toName string, logger *logging.Logger) *LeadMailer {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadMailer{
		sender:  sender,
		toEmail: toEmail,
		toName:  toName,
		logger:  logger,
	}
}

// NotifyLead sends the notification for a stored lead. Reply-To is set to the
// submitter so the operator can respond directly.
func (m *LeadMailer) NotifyLead(ctx context.Context, lead *leads.Lead) leads.NotifyResult {
	if m == nil || m.sender == nil || m.toEmail == "" {
		return leads.NotifyResult{Sent: false}
	}

	msg := EmailMessage{
		To:      m.toEmail,
		ToName:  m.toName,
		ReplyTo: lead.Email,
		Subject: fmt.Sprintf("New lead: %s", subjectSanitizer.Replace(lead.Name)),
		Body:    renderLeadText(lead),
		HTML:    renderLeadHTML(lead),
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		m.logger.Error("lead notification failed", "error", err, "lead_id", lead.ID)
		return leads.NotifyResult{Sent: false}
	}
	return leads.NotifyResult{Sent: true}
}

var _ leads.LeadNotifier = (*LeadMailer)(nil)

// Subject lines are header values and must stay single-line.
var subjectSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

// renderLeadText produces the plain-text body. Newlines in the message stay
// literal here.
func renderLeadText(lead *leads.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new lead has come in!\n\n")
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	if lead.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", lead.Phone)
	}
	if lead.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", lead.Company)
	}
	fmt.Fprintf(&b, "Source: %s\n", lead.Source)
	fmt.Fprintf(&b, "\nMessage:\n%s\n", lead.Message)
	return b.String()
}

// renderLeadHTML produces the HTML body. All user-supplied text is escaped
// before interpolation; newlines in the message become explicit line breaks.
func renderLeadHTML(lead *leads.Lead) string {
	var rows strings.Builder
	rows.WriteString(leadRow("Name", lead.Name))
	rows.WriteString(leadRow("Email", lead.Email))
	if lead.Phone != "" {
		rows.WriteString(leadRow("Phone", lead.Phone))
	}
	if lead.Company != "" {
		rows.WriteString(leadRow("Company", lead.Company))
	}
	rows.WriteString(leadRow("Source", lead.Source))

	message := strings.ReplaceAll(html.EscapeString(lead.Message), "\n", "<br>")

	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>New lead</h2>
<table style="border-collapse: collapse; margin: 20px 0;">
%s</table>
<p style="background: #f9fafb; padding: 12px; border-radius: 8px;">%s</p>
</div>`, rows.String(), message)
}

func leadRow(label, value string) string {
	return fmt.Sprintf(`  <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><strong>%s:</strong></td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
`, label, html.EscapeString(value))
}
