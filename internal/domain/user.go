package domain

import "time"

// Auth providers a User account can originate from.
const (
	AuthProviderEmail  = "EMAIL"
	AuthProviderGoogle = "GOOGLE"
)

type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	LastName     string    `json:"lastName" dynamodbav:"last_name"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	IsVerified   bool      `json:"isVerified" dynamodbav:"is_verified"`
	ReferralCode string    `json:"referralCode,omitempty" dynamodbav:"referral_code"`
	AuthProvider string    `json:"authProvider" dynamodbav:"auth_provider"` // EMAIL | GOOGLE
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

// PublicUser is the password-stripped view of a User returned to callers.
type PublicUser struct {
	UserID       string `json:"id,omitempty"`
	Name         string `json:"name"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	IsVerified   bool   `json:"isVerified,omitempty"`
	AuthProvider string `json:"authProvider,omitempty"`
}

// Public returns the caller-safe view of u.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		UserID:       u.UserID,
		Name:         u.Name,
		LastName:     u.LastName,
		Email:        u.Email,
		IsVerified:   u.IsVerified,
		AuthProvider: u.AuthProvider,
	}
}

// ExternalIdentity holds the claims extracted from a verified external
// identity-provider token.
type ExternalIdentity struct {
	Email     string
	GivenName string
	LastName  string
}

type RegisterRequest struct {
	Name         string `json:"name" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required"`
	ReferralCode string `json:"referralCode"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetTokenRequest struct {
	ResetToken string `json:"resetToken" validate:"required"`
}

type ResetPasswordRequest struct {
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}
