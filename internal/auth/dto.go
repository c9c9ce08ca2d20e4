package auth

import (
	"strings"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/frahmantamala/finance-tracker/internal/user"
)

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MinPasswordLength = 8
)

type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *RegisterDTO) Normalize() {
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.TrimSpace(d.Email)
}

func (d RegisterDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("username", d.Username).
		Required().
		MaxLength(MaxUsernameLength, internal.ErrCodeInvalidUsername)
	validator.Field("email", d.Email).
		MaxLength(MaxEmailLength, internal.ErrCodeInvalidEmail).
		Custom(func(value interface{}) *internal.AppError {
			email, _ := value.(string)
			if email != "" && !strings.Contains(email, "@") {
				return internal.NewValidationFieldError("email", "enter a valid email address", internal.ErrCodeInvalidEmail)
			}
			return nil
		})
	validator.Field("password", d.Password).
		Required().
		MinLength(MinPasswordLength, internal.ErrCodeInvalidPassword)

	if err := validator.Validate(); err != nil {
		return err
	}
	return nil
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("username", d.Username).Required()
	validator.Field("password", d.Password).Required()

	if err := validator.Validate(); err != nil {
		return err
	}
	return nil
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d RefreshTokenDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("refresh_token", d.RefreshToken).Required()

	if err := validator.Validate(); err != nil {
		return err
	}
	return nil
}

type RegisterResponse struct {
	User   user.UserResponse `json:"user"`
	Tokens AuthTokens        `json:"tokens"`
}
