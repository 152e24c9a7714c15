// Package passwordless defines the phone-OTP collaborator consumed by the
// auth service. Code delivery and verification happen inside an external
// passwordless SDK; this package only fixes the vocabulary its outcomes
// arrive in.
package passwordless

import "context"

// Status values reported by the provider.
type Status string

const (
	StatusOK                 Status = "OK"
	StatusIncorrectCode      Status = "INCORRECT_USER_INPUT_CODE_ERROR"
	StatusExpiredCode        Status = "EXPIRED_USER_INPUT_CODE_ERROR"
	StatusRestartFlow        Status = "RESTART_FLOW_ERROR"
	StatusSignInUpNotAllowed Status = "SIGN_IN_UP_NOT_ALLOWED"
)

// CodeResult is the outcome of creating or resending a code.
type CodeResult struct {
	Status Status
	Reason string
}

// ConsumeResult is the outcome of consuming a user-entered code.
type ConsumeResult struct {
	Status         Status
	Reason         string
	UserID         string
	CreatedNewUser bool
	// LoginMethods counts the login methods attached to the user after
	// consumption; a brand-new user has exactly one.
	LoginMethods   int
	MaxAttempts    int
	FailedAttempts int
}

// Provider is the opaque passwordless SDK surface. Implementations own the
// login-attempt state between CreateCode and ConsumeCode.
type Provider interface {
	CreateCode(ctx context.Context, phoneNumber string) (CodeResult, error)
	ResendCode(ctx context.Context) (CodeResult, error)
	ConsumeCode(ctx context.Context, userInputCode string) (ConsumeResult, error)
	ClearLoginAttempt(ctx context.Context) error
}
