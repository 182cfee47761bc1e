package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-screener/internal/types"
	"go.uber.org/zap"
)

// invalidCredentialsBody is the plain-text body of a failed login.
const invalidCredentialsBody = "Error: Invalid credentials"

// AuthHandler handles signup and login.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
	logger      *zap.SugaredLogger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   types.Validator(),
		logger:      logger,
	}
}

// Signup registers an account and answers with a plain-text confirmation.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Confirm never leaves the client.
	if err := h.validator.StructExcept(req, "Confirm"); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Errorw("Signup failed", "error", err)
			http.Error(w, "Signup failed", status)
			return
		}
		http.Error(w, err.Error(), status)
		return
	}

	h.logger.Infow("User registered", "user_id", user.ID)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "User registered successfully with ID: %s", user.ID)
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if HTTPStatus(err) == http.StatusUnauthorized {
			http.Error(w, invalidCredentialsBody, http.StatusUnauthorized)
			return
		}
		h.logger.Errorw("Login failed", "error", err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.logger.Errorw("Failed to generate token", "error", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(types.LoginResponse{Token: token}); err != nil {
		h.logger.Warnw("Failed to write login response", "error", err)
	}
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
