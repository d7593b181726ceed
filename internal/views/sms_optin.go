package views

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vadesa1/stans-events-web/domain"
)

// SmsOptInController drives the SMS consent page.
type SmsOptInController struct {
	users domain.UserRepository
	log   zerolog.Logger
}

// NewSmsOptInController creates the opt-in controller.
func NewSmsOptInController(users domain.UserRepository, log zerolog.Logger) *SmsOptInController {
	return &SmsOptInController{
		users: users,
		log:   log.With().Str("view", "sms_optin").Logger(),
	}
}

// Submit validates the consent form and records the opt-in. Validation
// failures surface as field-level errors before any network call.
func (c *SmsOptInController) Submit(ctx context.Context, optIn domain.SmsOptIn) error {
	digits := digitsOnly(optIn.Phone)
	if len(digits) != 10 {
		return &domain.ValidationError{Field: "phone", Message: "Enter a 10-digit phone number"}
	}
	if !optIn.ConsentGiven {
		return &domain.ValidationError{Field: "consent", Message: "Consent is required to receive SMS updates"}
	}
	if !optIn.TermsAccepted {
		return &domain.ValidationError{Field: "terms", Message: "You must accept the terms"}
	}

	optIn.Phone = digits
	if err := c.users.SubmitSmsOptIn(ctx, optIn); err != nil {
		return err
	}
	c.log.Info().Msg("sms opt-in recorded")
	return nil
}

// FormatPhoneNumber renders a partial or complete US number as
// "(XXX) XXX-XXXX", formatting as far as the digits typed so far allow.
func FormatPhoneNumber(input string) string {
	digits := digitsOnly(input)
	if len(digits) > 10 {
		digits = digits[:10]
	}
	switch {
	case len(digits) == 0:
		return ""
	case len(digits) <= 3:
		return "(" + digits
	case len(digits) <= 6:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
