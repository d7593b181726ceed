package views

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadesa1/stans-events-web/domain"
	"github.com/vadesa1/stans-events-web/internal/mocks"
)

func TestFormatPhoneNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"partial area code", "55", "(55"},
		{"full area code", "555", "(555"},
		{"partial exchange", "55512", "(555) 12"},
		{"full exchange", "555123", "(555) 123"},
		{"partial line", "55512345", "(555) 123-45"},
		{"complete", "5551234567", "(555) 123-4567"},
		{"already formatted", "(555) 123-4567", "(555) 123-4567"},
		{"with punctuation", "555.123.4567", "(555) 123-4567"},
		{"excess digits dropped", "55512345678901", "(555) 123-4567"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatPhoneNumber(tc.input))
		})
	}
}

func TestSubmitValidOptIn(t *testing.T) {
	var got domain.SmsOptIn
	users := &mocks.MockUserRepository{
		SubmitSmsOptInFn: func(ctx context.Context, optIn domain.SmsOptIn) error {
			got = optIn
			return nil
		},
	}
	c := NewSmsOptInController(users, zerolog.Nop())

	err := c.Submit(context.Background(), domain.SmsOptIn{
		Phone:         "(555) 123-4567",
		ConsentGiven:  true,
		TermsAccepted: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "5551234567", got.Phone, "the backend receives bare digits")
}

func TestSubmitValidationBeforeNetwork(t *testing.T) {
	users := &mocks.MockUserRepository{
		SubmitSmsOptInFn: func(ctx context.Context, optIn domain.SmsOptIn) error {
			t.Error("validation must fail before any network call")
			return nil
		},
	}
	c := NewSmsOptInController(users, zerolog.Nop())

	cases := []struct {
		name  string
		optIn domain.SmsOptIn
		field string
	}{
		{"short phone", domain.SmsOptIn{Phone: "555123", ConsentGiven: true, TermsAccepted: true}, "phone"},
		{"missing consent", domain.SmsOptIn{Phone: "5551234567", TermsAccepted: true}, "consent"},
		{"missing terms", domain.SmsOptIn{Phone: "5551234567", ConsentGiven: true}, "terms"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.Submit(context.Background(), tc.optIn)
			var valErr *domain.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tc.field, valErr.Field)
		})
	}
}
