package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/shagunapp/shagun-api/internal/middleware"
	"github.com/shagunapp/shagun-api/internal/payload"
	"github.com/shagunapp/shagun-api/internal/usecase"
	"github.com/shagunapp/shagun-api/shared/provider"
	"github.com/shagunapp/shagun-api/shared/validator"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validator.Validator
	logger               *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:          authUsecase,
		passwordResetUsecase: passwordResetUsecase,
		validator:            validator,
		logger:               logger,
	}
}

// RegisterRoutes mounts the auth endpoints on the given router.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authn *middleware.Authenticator) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/verify-otp", h.VerifyOTP)
		r.Post("/resend-otp", h.ResendOTP)
		r.Post("/login", h.Login)
		r.Post("/google", h.socialLogin("google"))
		r.Post("/facebook", h.socialLogin("facebook"))
		r.Post("/apple", h.socialLogin("apple"))
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(authn.RequireAuth)
			r.Get("/me", h.Me)
			r.Post("/upgrade", h.UpgradeToPremium)
			r.Delete("/delete-account", h.DeleteAccount)
		})
	})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req payload.SignupRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authUsecase.Signup(r.Context(), usecase.SignupParams{
		Name:             req.Name,
		Email:            req.Email,
		Mobile:           req.Mobile,
		Password:         req.Password,
		FirebaseVerified: req.FirebaseVerified,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			writeMessage(w, http.StatusBadRequest, "User with this email already exists")
		case errors.Is(err, usecase.ErrMobileTaken):
			writeMessage(w, http.StatusBadRequest, "User with this mobile number already exists")
		case errors.Is(err, usecase.ErrMailerNotConfigured):
			writeMessage(w, http.StatusInternalServerError, "Server Email Config Missing. Please add SMTP keys.")
		default:
			h.logger.Error().Err(err).Msg("failed to sign up user")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	if result.Verified {
		writeJSON(w, http.StatusCreated, struct {
			payload.AuthResponse
			Message string `json:"message"`
		}{
			AuthResponse: payload.NewAuthResponse(result.Auth.User, result.Auth.Token),
			Message:      "User registered successfully via Firebase",
		})
		return
	}

	writeJSON(w, http.StatusCreated, payload.SignupResponse{
		Message: "OTP sent to your email",
		Mobile:  result.Mobile,
		Email:   result.Email,
	})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyOTPRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authUsecase.VerifyOTP(r.Context(), req.Mobile, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, usecase.ErrInvalidOTP):
			writeMessage(w, http.StatusBadRequest, "Invalid or expired OTP")
		default:
			h.logger.Error().Err(err).Msg("failed to verify OTP")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, payload.NewAuthResponse(result.User, result.Token))
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.ResendOTPRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authUsecase.ResendOTP(r.Context(), req.Mobile); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, usecase.ErrAlreadyVerified):
			writeMessage(w, http.StatusBadRequest, "Account is already verified")
		case errors.Is(err, usecase.ErrMailerNotConfigured):
			writeMessage(w, http.StatusInternalServerError, "Server Email Config Missing. Please add SMTP keys.")
		default:
			h.logger.Error().Err(err).Msg("failed to resend OTP")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "OTP sent to your email")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authUsecase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, usecase.ErrNotVerified):
			writeMessage(w, http.StatusUnauthorized, "Account not verified. Please verify OTP.")
		default:
			h.logger.Error().Err(err).Msg("failed to log in user")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, payload.NewAuthResponse(result.User, result.Token))
}

func (h *AuthHandler) socialLogin(providerName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payload.SocialLoginRequest
		if err := decodeAndValidate(r, h.validator, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := h.authUsecase.SocialLogin(r.Context(), providerName, provider.Assertion{
			Email: req.Email,
			Name:  req.Name,
			Photo: req.Photo,
			Token: req.Token,
		})
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrProviderMissingEmail):
				writeMessage(w, http.StatusBadRequest,
					providerTitle(providerName)+" account does not have an email associated.")
			case errors.Is(err, usecase.ErrProviderRejected):
				writeMessage(w, http.StatusUnauthorized, "Invalid social login token")
			case errors.Is(err, usecase.ErrAccountNotFound):
				writeMessage(w, http.StatusNotFound, "Account not found. Please Sign Up with Mobile Number first.")
			case errors.Is(err, usecase.ErrUnknownProvider):
				writeMessage(w, http.StatusBadRequest, "Unknown social login provider")
			default:
				h.logger.Error().Err(err).Str("provider", providerName).Msg("failed to log in via social provider")
				writeMessage(w, http.StatusInternalServerError, "something went wrong")
			}
			return
		}

		writeJSON(w, http.StatusOK, payload.NewAuthResponse(result.User, result.Token))
	}
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrMailerNotConfigured):
			writeMessage(w, http.StatusInternalServerError, "Server Email Config Missing. Please add SMTP keys.")
		default:
			h.logger.Error().Err(err).Msg("failed to request password reset")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	// The response is identical whether or not the email exists.
	writeMessage(w, http.StatusOK, "If that email is registered, a reset code has been sent")
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := decodeAndValidate(r, h.validator, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase.ErrResetTokenInvalid):
			writeMessage(w, http.StatusBadRequest, "Invalid password reset code")
		case errors.Is(err, usecase.ErrResetTokenExpired):
			writeMessage(w, http.StatusBadRequest, "Password reset code has expired")
		default:
			h.logger.Error().Err(err).Msg("failed to reset password")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Password reset successful")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	writeJSON(w, http.StatusOK, payload.NewProfileResponse(user))
}

func (h *AuthHandler) UpgradeToPremium(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	updated, err := h.authUsecase.UpgradeToPremium(r.Context(), user.ID.Hex())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		default:
			h.logger.Error().Err(err).Msg("failed to upgrade user to premium")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "User upgraded to premium",
		"isPremium": updated.IsPremium,
	})
}

func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	if err := h.authUsecase.DeleteAccount(r.Context(), user.ID.Hex()); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		default:
			h.logger.Error().Err(err).Msg("failed to delete account")
			writeMessage(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeMessage(w, http.StatusOK, "User deleted")
}

func providerTitle(name string) string {
	if name == "" {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}
