package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// Validator returns the validator used by the request types.
func Validator() *validator.Validate {
	return validate
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// SignupRequest is the body of POST /auth/signup. Confirm never leaves the client.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"-" validate:"eqfield=Password"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	return validate.Struct(r)
}
