package leads

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Field length ceilings. The store re-checks them before every write and
// rejects violations instead of truncating.
const (
	MaxNameLen    = 100
	MaxEmailLen   = 200
	MaxPhoneLen   = 50
	MaxCompanyLen = 120
	MaxMessageLen = 5000
	MaxSourceLen  = 50
)

// DefaultSource is assigned when a submission does not declare its origin.
const DefaultSource = "web"

// Minimal syntactic check: something@something.something, no whitespace.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Lead represents a stored contact-form submission. Leads are immutable once
// created; there are no update or delete operations.
type Lead struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Email     string    `json:"email" dynamodbav:"email"`
	Phone     string    `json:"phone" dynamodbav:"phone"`
	Company   string    `json:"company" dynamodbav:"company"`
	Message   string    `json:"message" dynamodbav:"message"`
	Consent   bool      `json:"consent" dynamodbav:"consent"`
	Source    string    `json:"source" dynamodbav:"source"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updatedAt"`
}

// SubmitLeadRequest is the untrusted request body of a form submission.
// Consent is a pointer so only a literal JSON true satisfies the consent rule.
type SubmitLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
	Consent *bool  `json:"consent"`
	Source  string `json:"source"`
}

// NormalizeOptions carries deployment-time validation policy.
type NormalizeOptions struct {
	// RequireConsent rejects submissions whose consent field is not exactly true.
	RequireConsent bool
}

// Normalize validates the submission and produces the Lead to persist.
// Rules run in order and the first failure wins: name, email and message must
// be present, consent must be exactly true when required, and the email must
// pass the syntactic check. The result is trimmed, the email lower-cased and
// the source defaulted. Normalize has no side effects.
func (r *SubmitLeadRequest) Normalize(opts NormalizeOptions) (*Lead, error) {
	name := strings.TrimSpace(r.Name)
	email := strings.ToLower(strings.TrimSpace(r.Email))
	message := strings.TrimSpace(r.Message)

	if name == "" {
		return nil, ErrMissingField
	}
	if email == "" {
		return nil, ErrMissingField
	}
	if message == "" {
		return nil, ErrMissingField
	}
	if opts.RequireConsent && (r.Consent == nil || !*r.Consent) {
		return nil, ErrMissingField
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	source := strings.TrimSpace(r.Source)
	if source == "" {
		source = DefaultSource
	}

	return &Lead{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(r.Phone),
		Company: strings.TrimSpace(r.Company),
		Message: message,
		Consent: r.Consent != nil && *r.Consent,
		Source:  source,
	}, nil
}

// checkSchema re-applies the required-field and length constraints before a
// write. A violating lead is rejected rather than truncated.
func checkSchema(l *Lead) error {
	switch {
	case l.Name == "" || l.Email == "" || l.Message == "":
		return fmt.Errorf("required field empty")
	case len(l.Name) > MaxNameLen:
		return fmt.Errorf("name exceeds %d characters", MaxNameLen)
	case len(l.Email) > MaxEmailLen:
		return fmt.Errorf("email exceeds %d characters", MaxEmailLen)
	case len(l.Phone) > MaxPhoneLen:
		return fmt.Errorf("phone exceeds %d characters", MaxPhoneLen)
	case len(l.Company) > MaxCompanyLen:
		return fmt.Errorf("company exceeds %d characters", MaxCompanyLen)
	case len(l.Message) > MaxMessageLen:
		return fmt.Errorf("message exceeds %d characters", MaxMessageLen)
	case len(l.Source) > MaxSourceLen:
		return fmt.Errorf("source exceeds %d characters", MaxSourceLen)
	}
	return nil
}
