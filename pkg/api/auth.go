package api

import (
	"context"
	"errors"
	"fmt"

	"postcraft/pkg/domain"
	"postcraft/pkg/passwordless"
)

// phoneCountryPrefix is prepended to the user-entered number before it
// reaches the passwordless provider.
const phoneCountryPrefix = "+91"

var errNoProvider = errors.New("passwordless provider not configured")

// AuthService wraps the passwordless collaborator and the register endpoint.
// It only normalizes result shapes and error messages; code delivery and
// session issuance are the collaborator's business.
type AuthService struct {
	client   *Client
	provider passwordless.Provider
}

// FormatPhone applies the country prefix expected by the provider.
func FormatPhone(phone string) string {
	return phoneCountryPrefix + phone
}

// SendOTP requests a login code for the given phone number.
func (s *AuthService) SendOTP(ctx context.Context, phone string) (domain.OTPResult, error) {
	if s.provider == nil {
		return domain.OTPResult{}, errNoProvider
	}
	result, err := s.provider.CreateCode(ctx, FormatPhone(phone))
	if err != nil {
		return domain.OTPResult{}, normalizeProviderError(err, "Failed to send OTP. Please try again.")
	}
	if result.Status == passwordless.StatusSignInUpNotAllowed {
		return domain.OTPResult{}, &AuthenticationError{APIError{Message: reasonOr(result.Reason, "Sign up not allowed"), Code: CodeAuthentication}}
	}
	return domain.OTPResult{Success: true, Message: "OTP sent successfully to your phone"}, nil
}

// ResendOTP re-sends the code for the in-flight login attempt.
func (s *AuthService) ResendOTP(ctx context.Context) (domain.OTPResult, error) {
	if s.provider == nil {
		return domain.OTPResult{}, errNoProvider
	}
	result, err := s.provider.ResendCode(ctx)
	if err != nil {
		return domain.OTPResult{}, normalizeProviderError(err, "Failed to resend OTP. Please try again.")
	}
	if result.Status == passwordless.StatusRestartFlow {
		_ = s.provider.ClearLoginAttempt(ctx)
		return domain.OTPResult{}, &AuthenticationError{APIError{Message: "Session expired. Please start again.", Code: CodeAuthentication}}
	}
	return domain.OTPResult{Success: true, Message: "OTP resent successfully"}, nil
}

// VerifyOTP consumes the user-entered code and reports whether a new account
// was created.
func (s *AuthService) VerifyOTP(ctx context.Context, otp string) (domain.VerifyOTPResult, error) {
	if s.provider == nil {
		return domain.VerifyOTPResult{}, errNoProvider
	}
	result, err := s.provider.ConsumeCode(ctx, otp)
	if err != nil {
		return domain.VerifyOTPResult{}, normalizeProviderError(err, "Unexpected error occurred")
	}

	switch result.Status {
	case passwordless.StatusOK:
		_ = s.provider.ClearLoginAttempt(ctx)
		isNewUser := result.CreatedNewUser && result.LoginMethods == 1
		message := "Login successful"
		if isNewUser {
			message = "Account created successfully"
		}
		return domain.VerifyOTPResult{
			Success:   true,
			IsNewUser: isNewUser,
			UserID:    result.UserID,
			Message:   message,
		}, nil
	case passwordless.StatusIncorrectCode:
		attemptsLeft := result.MaxAttempts - result.FailedAttempts
		plural := "s"
		if attemptsLeft == 1 {
			plural = ""
		}
		message := fmt.Sprintf("Incorrect OTP. %d attempt%s remaining.", attemptsLeft, plural)
		return domain.VerifyOTPResult{}, NewValidationError(message, 0)
	case passwordless.StatusExpiredCode:
		return domain.VerifyOTPResult{}, NewValidationError("OTP has expired. Please request a new one.", 0)
	case passwordless.StatusRestartFlow:
		_ = s.provider.ClearLoginAttempt(ctx)
		return domain.VerifyOTPResult{}, &AuthenticationError{APIError{Message: "Too many incorrect attempts. Please start again.", Code: CodeAuthentication}}
	case passwordless.StatusSignInUpNotAllowed:
		_ = s.provider.ClearLoginAttempt(ctx)
		return domain.VerifyOTPResult{}, &AuthenticationError{APIError{Message: reasonOr(result.Reason, "Sign in not allowed"), Code: CodeAuthentication}}
	default:
		return domain.VerifyOTPResult{}, &APIError{Message: "Unexpected error occurred"}
	}
}

// Register completes signup through the backend once the phone is verified.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	var resp domain.RegisterResponse
	if err := s.client.Post(ctx, "/auth/register", req, &resp); err != nil {
		return domain.RegisterResponse{}, err
	}
	if err := checkShape(resp); err != nil {
		return domain.RegisterResponse{}, err
	}
	return resp, nil
}

// normalizeProviderError keeps taxonomy errors intact and folds everything
// else into the base error with a caller-supplied fallback message.
func normalizeProviderError(err error, fallback string) error {
	var base *APIError
	if errors.As(err, &base) {
		return err
	}
	message := err.Error()
	if message == "" {
		message = fallback
	}
	return &APIError{Message: message}
}

func reasonOr(reason, fallback string) string {
	if reason != "" {
		return reason
	}
	return fallback
}
