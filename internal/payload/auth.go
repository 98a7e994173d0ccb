package payload

import "github.com/shagunapp/shagun-api/internal/model"

type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Mobile   string `json:"mobile"   validate:"required,min=10"`
	Password string `json:"password" validate:"required,min=6"`
	// FirebaseVerified marks the email as already attested by a trusted
	// identity provider; the account is created verified and no OTP is sent.
	FirebaseVerified bool `json:"firebaseVerified"`
}

type SignupResponse struct {
	Message string `json:"message"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
}

type VerifyOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
	OTP    string `json:"otp"    validate:"required"`
}

type ResendOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SocialLoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
	Token string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// AuthResponse is the session payload returned by every endpoint that
// authenticates a user.
type AuthResponse struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Token     string `json:"token"`
	IsPremium bool   `json:"isPremium"`
}

// ProfileResponse is the authenticated user's own profile.
type ProfileResponse struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	IsPremium    bool   `json:"isPremium"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// NewProfileResponse builds the profile payload from a user.
func NewProfileResponse(user *model.User) ProfileResponse {
	return ProfileResponse{
		ID:           user.ID.Hex(),
		Name:         user.Name,
		Email:        user.Email,
		Mobile:       user.Mobile,
		IsPremium:    user.IsPremium,
		ProfileImage: user.ProfileImage,
	}
}

// NewAuthResponse builds the session payload from a user and its token.
func NewAuthResponse(user *model.User, token string) AuthResponse {
	return AuthResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Mobile:    user.Mobile,
		Token:     token,
		IsPremium: user.IsPremium,
	}
}
