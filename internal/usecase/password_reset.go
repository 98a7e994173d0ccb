package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/shagunapp/shagun-api/internal/repository"
	"github.com/shagunapp/shagun-api/shared/mailer"
	"github.com/shagunapp/shagun-api/shared/security"
)

const resetTokenTTL = 15 * time.Minute

// PasswordResetUsecase defines the business logic for password reset.
// The reset code lives on the user document, like the registration OTP.
type PasswordResetUsecase interface {
	// RequestPasswordReset initiates the password reset process for a given email.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword sets a new password when the emailed code matches.
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}

var (
	ErrResetTokenInvalid = errors.New("invalid password reset code")
	ErrResetTokenExpired = errors.New("password reset code has expired")
)

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	outbox   *mailer.Outbox
	logger   *zerolog.Logger
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	outbox *mailer.Outbox,
	logger *zerolog.Logger,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		outbox:   outbox,
		logger:   logger,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// To prevent email enumeration, do not reveal that the email does not exist.
			return nil
		}
		return err
	}

	if !u.outbox.Ready() {
		return ErrMailerNotConfigured
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		ResetPasswordToken:  &code,
		ResetPasswordExpire: &expires,
	}); err != nil {
		return err
	}

	if _, err := u.outbox.Enqueue(mailer.Email{
		To:      []string{user.Email},
		Subject: "Password Reset Request",
		Body: fmt.Sprintf(
			"Your password reset code is: %s\n\nIt is valid for 15 minutes. "+
				"If you did not request a password reset, you can safely ignore this email.",
			code,
		),
	}); err != nil {
		u.logger.Error().Err(err).Str("to", user.Email).Msg("failed to enqueue password reset mail")
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrResetTokenInvalid
		}
		return err
	}

	if user.ResetPasswordToken == "" ||
		strings.TrimSpace(user.ResetPasswordToken) != strings.TrimSpace(token) {
		return ErrResetTokenInvalid
	}

	if time.Now().After(user.ResetPasswordExpire) {
		return ErrResetTokenExpired
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		Password:        &passwordHash,
		ClearResetToken: true,
	}); err != nil {
		return err
	}

	return nil
}
