package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/shagunapp/shagun-api/internal/config"
	"github.com/shagunapp/shagun-api/internal/model"
	"github.com/shagunapp/shagun-api/internal/repository"
	"github.com/shagunapp/shagun-api/shared/auth"
	"github.com/shagunapp/shagun-api/shared/mailer"
	"github.com/shagunapp/shagun-api/shared/provider"
	"github.com/shagunapp/shagun-api/shared/security"
)

const otpTTL = 10 * time.Minute

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Signup(ctx context.Context, params SignupParams) (*SignupResult, error)
	VerifyOTP(ctx context.Context, mobile, otp string) (*AuthResult, error)
	ResendOTP(ctx context.Context, mobile string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	SocialLogin(ctx context.Context, providerName string, assertion provider.Assertion) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*model.User, error)
	UpgradeToPremium(ctx context.Context, userID string) (*model.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// SignupParams defines the parameters for user registration.
type SignupParams struct {
	Name     string
	Email    string
	Mobile   string
	Password string
	// FirebaseVerified marks the email as attested by a trusted external
	// identity provider; the account is created verified and no OTP is sent.
	FirebaseVerified bool
}

// SignupResult is either a pending OTP verification or, for attested
// signups, an immediate session.
type SignupResult struct {
	Verified bool
	Auth     *AuthResult
	Mobile   string
	Email    string
}

// AuthResult is an authenticated session: the user plus a bearer token.
type AuthResult struct {
	User  *model.User
	Token string
}

var (
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrMobileTaken          = errors.New("user with this mobile number already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidOTP           = errors.New("invalid or expired OTP")
	ErrAlreadyVerified      = errors.New("account is already verified")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrNotVerified          = errors.New("account not verified")
	ErrMailerNotConfigured  = errors.New("server email configuration missing")
	ErrAccountNotFound      = errors.New("account not found")
	ErrUnknownProvider      = errors.New("unknown social login provider")
	ErrProviderMissingEmail = errors.New("social account does not have an email associated")
	ErrProviderRejected     = errors.New("social login assertion rejected")
)

type authUsecase struct {
	userRepo    repository.UserRepository
	weddingRepo repository.WeddingRepository
	guestRepo   repository.GuestRepository
	expenseRepo repository.ExpenseRepository
	shagunRepo  repository.ShagunRepository
	jwtAuth     auth.JWTAuthenticator
	outbox      *mailer.Outbox
	providers   map[string]provider.SocialProvider
	tokenCfg    config.TokenConfig
	logger      *zerolog.Logger
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	weddingRepo repository.WeddingRepository,
	guestRepo repository.GuestRepository,
	expenseRepo repository.ExpenseRepository,
	shagunRepo repository.ShagunRepository,
	jwtAuth auth.JWTAuthenticator,
	outbox *mailer.Outbox,
	providers []provider.SocialProvider,
	tokenCfg config.TokenConfig,
	logger *zerolog.Logger,
) AuthUsecase {
	providerMap := make(map[string]provider.SocialProvider, len(providers))
	for _, p := range providers {
		providerMap[p.Name()] = p
	}

	return &authUsecase{
		userRepo:    userRepo,
		weddingRepo: weddingRepo,
		guestRepo:   guestRepo,
		expenseRepo: expenseRepo,
		shagunRepo:  shagunRepo,
		jwtAuth:     jwtAuth,
		outbox:      outbox,
		providers:   providerMap,
		tokenCfg:    tokenCfg,
		logger:      logger,
	}
}

func (u *authUsecase) Signup(ctx context.Context, params SignupParams) (*SignupResult, error) {
	// Uniqueness is enforced against verified accounts only; an
	// unverified row with the same email or mobile is a pending
	// registration and gets overwritten below.
	existingByEmail, err := u.findUser(ctx, func() (*model.User, error) {
		return u.userRepo.GetUserByEmail(ctx, params.Email)
	})
	if err != nil {
		return nil, err
	}
	if existingByEmail != nil && existingByEmail.IsVerified {
		return nil, ErrEmailTaken
	}

	existingByMobile, err := u.findUser(ctx, func() (*model.User, error) {
		return u.userRepo.GetUserByMobile(ctx, params.Mobile)
	})
	if err != nil {
		return nil, err
	}
	if existingByMobile != nil && existingByMobile.IsVerified {
		return nil, ErrMobileTaken
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	existing := existingByEmail
	if existing == nil {
		existing = existingByMobile
	}

	if params.FirebaseVerified {
		user, err := u.upsertUser(ctx, existing, params, passwordHash, repository.UpdateUserParams{ClearOTP: true}, true)
		if err != nil {
			return nil, err
		}

		token, err := u.generateToken(user.ID.Hex())
		if err != nil {
			return nil, err
		}

		return &SignupResult{
			Verified: true,
			Auth:     &AuthResult{User: user, Token: token},
			Mobile:   user.Mobile,
			Email:    user.Email,
		}, nil
	}

	// The OTP mail cannot be sent without SMTP configuration; fail the
	// whole signup before any write.
	if !u.outbox.Ready() {
		return nil, ErrMailerNotConfigured
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	otpExpires := time.Now().Add(otpTTL)

	u.logger.Info().
		Str("mobile", params.Mobile).
		Str("otp", otp).
		Msg("registration OTP issued")

	user, err := u.upsertUser(ctx, existing, params, passwordHash, repository.UpdateUserParams{
		OTP:        &otp,
		OTPExpires: &otpExpires,
	}, false)
	if err != nil {
		return nil, err
	}

	u.enqueueMail(
		user.Email,
		"Your OTP for Registration",
		fmt.Sprintf("Your OTP for registration is: %s\n\nIt is valid for 10 minutes.", otp),
	)

	return &SignupResult{Mobile: user.Mobile, Email: user.Email}, nil
}

func (u *authUsecase) VerifyOTP(ctx context.Context, mobile, otp string) (*AuthResult, error) {
	user, err := u.userRepo.GetUserByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Double submits from flaky mobile networks are common; a verified
	// user silently gets a fresh token instead of an error.
	if user.IsVerified {
		token, err := u.generateToken(user.ID.Hex())
		if err != nil {
			return nil, err
		}
		return &AuthResult{User: user, Token: token}, nil
	}

	// A single generic failure for both mismatch and expiry, so the
	// response cannot be used as an oracle.
	if user.OTP == "" ||
		strings.TrimSpace(user.OTP) != strings.TrimSpace(otp) ||
		time.Now().After(user.OTPExpires) {
		return nil, ErrInvalidOTP
	}

	verified := true
	updated, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		IsVerified: &verified,
		ClearOTP:   true,
	})
	if err != nil {
		return nil, err
	}

	token, err := u.generateToken(updated.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: updated, Token: token}, nil
}

func (u *authUsecase) ResendOTP(ctx context.Context, mobile string) error {
	user, err := u.userRepo.GetUserByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	if !u.outbox.Ready() {
		return ErrMailerNotConfigured
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	otpExpires := time.Now().Add(otpTTL)

	u.logger.Info().
		Str("mobile", mobile).
		Str("otp", otp).
		Msg("registration OTP reissued")

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		OTP:        &otp,
		OTPExpires: &otpExpires,
	}); err != nil {
		return err
	}

	u.enqueueMail(
		user.Email,
		"Your OTP for Registration",
		fmt.Sprintf("Your OTP for registration is: %s\n\nIt is valid for 10 minutes.", otp),
	)

	return nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	if ok, err := security.VerifyPassword(password, user.Password); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := u.generateToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (u *authUsecase) SocialLogin(
	ctx context.Context,
	providerName string,
	assertion provider.Assertion,
) (*AuthResult, error) {
	socialProvider, ok := u.providers[providerName]
	if !ok {
		return nil, ErrUnknownProvider
	}

	identity, err := socialProvider.Verify(ctx, assertion)
	if err != nil {
		if errors.Is(err, provider.ErrMissingEmail) {
			return nil, ErrProviderMissingEmail
		}
		u.logger.Warn().
			Err(err).
			Str("provider", providerName).
			Msg("social login assertion rejected")
		return nil, ErrProviderRejected
	}

	user, err := u.userRepo.GetUserByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Mobile is mandatory and unique, so social login alone
			// can never create an account.
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	token, err := u.generateToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (u *authUsecase) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) UpgradeToPremium(ctx context.Context, userID string) (*model.User, error) {
	premium := true
	user, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{IsPremium: &premium})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// DeleteAccount removes the user and everything they own. Dependent rows
// key off the wedding, so wedding ids are resolved first. The sequence is
// not transactional; a crash mid-way can leave orphans.
func (u *authUsecase) DeleteAccount(ctx context.Context, userID string) error {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	weddingIDs, err := u.weddingRepo.ListWeddingIDs(ctx, user.ID)
	if err != nil {
		return err
	}

	guests, err := u.guestRepo.DeleteGuestsByWeddings(ctx, weddingIDs)
	if err != nil {
		return err
	}
	expenses, err := u.expenseRepo.DeleteExpensesByWeddings(ctx, weddingIDs)
	if err != nil {
		return err
	}
	shaguns, err := u.shagunRepo.DeleteShagunByWeddings(ctx, weddingIDs)
	if err != nil {
		return err
	}
	weddings, err := u.weddingRepo.DeleteWeddingsByUser(ctx, user.ID)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	u.logger.Info().
		Str("user_id", userID).
		Int64("weddings", weddings).
		Int64("guests", guests).
		Int64("expenses", expenses).
		Int64("shagun", shaguns).
		Msg("account deleted")

	return nil
}

// findUser maps the driver's not-found sentinel to a nil user.
func (u *authUsecase) findUser(_ context.Context, lookup func() (*model.User, error)) (*model.User, error) {
	user, err := lookup()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// upsertUser overwrites a pending unverified registration or creates a
// fresh user row.
func (u *authUsecase) upsertUser(
	ctx context.Context,
	existing *model.User,
	params SignupParams,
	passwordHash string,
	extra repository.UpdateUserParams,
	verified bool,
) (*model.User, error) {
	if existing != nil {
		extra.Name = &params.Name
		extra.Email = &params.Email
		extra.Mobile = &params.Mobile
		extra.Password = &passwordHash
		extra.IsVerified = &verified
		return u.userRepo.UpdateUser(ctx, existing.ID.Hex(), extra)
	}

	user := &model.User{
		Name:       params.Name,
		Email:      params.Email,
		Mobile:     params.Mobile,
		Password:   passwordHash,
		IsVerified: verified,
	}
	if extra.OTP != nil {
		user.OTP = *extra.OTP
	}
	if extra.OTPExpires != nil {
		user.OTPExpires = *extra.OTPExpires
	}

	return u.userRepo.CreateUser(ctx, user)
}

func (u *authUsecase) generateToken(userID string) (string, error) {
	now := time.Now()
	claims := auth.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenCfg.ExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.tokenCfg.Issuer,
			Audience:  jwt.ClaimStrings{u.tokenCfg.Issuer},
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.tokenCfg.Secret)
}

func (u *authUsecase) enqueueMail(to, subject, body string) {
	if _, err := u.outbox.Enqueue(mailer.Email{
		To:      []string{to},
		Subject: subject,
		Body:    body,
	}); err != nil {
		// Delivery failures are never surfaced to the caller; the
		// resend path covers a message that never arrives.
		u.logger.Error().Err(err).Str("to", to).Msg("failed to enqueue mail")
	}
}

// generateOTP returns a random 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
