package domain

import (
	"fmt"
	"net/http"
)

// Result is the tagged outcome a flow hands to the dispatch layer.
// Status is the intended transport status; the dispatch layer performs
// the mapping and nothing else.
type Result struct {
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	User    *PublicUser `json:"user,omitempty"`
	Token   string      `json:"token,omitempty"`
	Data    any         `json:"data,omitempty"`
}

// Machine-readable error codes carried alongside messages.
const (
	CodeEmailInUse          = "EMAIL_IN_USE"
	CodeEmailNotFound       = "EMAIL_NOT_FOUND"
	CodeVerificationPending = "VERIFICATION_PENDING"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// PendingVerification describes an account awaiting email verification.
// RemainingTime is the live TTL of the pending code in seconds, 0 if none.
type PendingVerification struct {
	Email             string `json:"email"`
	IsVerified        bool   `json:"isVerified"`
	RemainingTime     int64  `json:"remainingTime"`
	NextResendAllowed string `json:"nextResendAllowed,omitempty"`
}

func RegistrationSuccess(name, lastName, email string) *Result {
	return &Result{
		Success: true,
		Status:  http.StatusCreated,
		Message: "Registration successful! Please check your email for verification.",
		User:    &PublicUser{Name: name, LastName: lastName, Email: email},
	}
}

func LoginSuccess(u *User, token string) *Result {
	return &Result{
		Success: true,
		Status:  http.StatusOK,
		Message: "Logged in successfully.",
		User:    u.Public(),
		Token:   token,
	}
}

func InvalidEmailFormat() *Result {
	return &Result{Success: false, Status: http.StatusBadRequest, Message: "Invalid email format."}
}

func EmailInUse() *Result {
	return &Result{
		Success: false,
		Status:  http.StatusBadRequest,
		Message: "This email address is already registered.",
		Error:   CodeEmailInUse,
	}
}

// InvalidEmailOrPassword covers both an unknown email and a password
// mismatch so login responses carry no account-enumeration signal.
func InvalidEmailOrPassword() *Result {
	return &Result{Success: false, Status: http.StatusUnauthorized, Message: "Invalid email or password."}
}

func UserNotVerified(email string, remainingTime int64) *Result {
	return &Result{
		Success: false,
		Status:  http.StatusBadRequest,
		Message: "Account pending verification. Please check your email.",
		Error:   CodeVerificationPending,
		Data: PendingVerification{
			Email:             email,
			IsVerified:        false,
			RemainingTime:     remainingTime,
			NextResendAllowed: fmt.Sprintf("%d minutes", remainingTime/60),
		},
	}
}

func UserNotFound() *Result {
	return &Result{Success: false, Status: http.StatusNotFound, Message: "User not found."}
}

func UserAlreadyVerified() *Result {
	return &Result{Success: false, Status: http.StatusBadRequest, Message: "User is already verified."}
}

func VerificationCodeExpired() *Result {
	return &Result{Success: false, Status: http.StatusBadRequest, Message: "Verification code expired. Please request a new code."}
}

func InvalidVerificationCode() *Result {
	return &Result{Success: false, Status: http.StatusBadRequest, Message: "Invalid verification code."}
}

func VerificationCodeNotExpired(email string, remainingTime int64) *Result {
	return &Result{
		Success: false,
		Status:  http.StatusBadRequest,
		Message: "Verification code not expired. Please check your email for the code.",
		Data:    PendingVerification{Email: email, IsVerified: false, RemainingTime: remainingTime},
	}
}

func VerificationEmailResent() *Result {
	return &Result{Success: true, Status: http.StatusOK, Message: "Verification email resent. Please check your inbox."}
}

func VerificationSuccess(u *User, token string) *Result {
	return &Result{
		Success: true,
		Status:  http.StatusOK,
		Message: "Verification successful.",
		User:    u.Public(),
		Token:   token,
	}
}

func NonExistentEmailForPasswordReset() *Result {
	return &Result{
		Success: false,
		Status:  http.StatusNotFound,
		Message: "No account found with this email address.",
		Error:   CodeEmailNotFound,
	}
}

func PasswordResetLinkSent() *Result {
	return &Result{Success: true, Status: http.StatusOK, Message: "Password reset link sent. Please check your email."}
}

func PasswordResetLinkExpired() *Result {
	return &Result{Success: false, Status: http.StatusBadRequest, Message: "Password reset link expired. Please request a new one."}
}

func InvalidPasswordResetLink() *Result {
	return &Result{Success: false, Status: http.StatusBadRequest, Message: "Invalid password reset link."}
}

func PasswordResetLinkVerified() *Result {
	return &Result{Success: true, Status: http.StatusOK, Message: "Password reset link verified."}
}

func PasswordResetSuccess() *Result {
	return &Result{Success: true, Status: http.StatusOK, Message: "Password reset successfully. You can now log in with your new password."}
}

func InvalidCurrentPassword() *Result {
	return &Result{Success: false, Status: http.StatusBadRequest, Message: "Current password is incorrect."}
}

func PasswordChangeSuccess() *Result {
	return &Result{Success: true, Status: http.StatusOK, Message: "Password changed successfully."}
}

func CheckAuthSuccess(u *User) *Result {
	return &Result{Success: true, Status: http.StatusOK, User: u.Public()}
}

func CheckAuthFailed() *Result {
	return &Result{Success: false, Status: http.StatusUnauthorized, Message: "Authentication failed."}
}

func GoogleAuthFailed() *Result {
	return &Result{Success: false, Status: http.StatusUnauthorized, Message: "Google authentication failed."}
}

func LogoutSuccess() *Result {
	return &Result{Success: true, Status: http.StatusOK, Message: "Logged out successfully."}
}

func ValidationError(msg string) *Result {
	if msg == "" {
		msg = "Invalid input format."
	}
	return &Result{Success: false, Status: http.StatusBadRequest, Message: msg}
}

func UnexpectedError(operation string) *Result {
	return &Result{
		Success: false,
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("An unexpected error occurred during %s. Please try again later.", operation),
		Error:   CodeInternalServerError,
	}
}
