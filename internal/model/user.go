package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account holder. A user starts unverified with a
// pending OTP and becomes verified exactly once; deletion cascades to
// all owned data.
type User struct {
	ID                  bson.ObjectID `bson:"_id,omitempty"           json:"_id"`
	Name                string        `bson:"name"                    json:"name"`
	Email               string        `bson:"email"                   json:"email"`
	Mobile              string        `bson:"mobile"                  json:"mobile"`
	Password            string        `bson:"password"                json:"-"`
	OTP                 string        `bson:"otp,omitempty"           json:"-"`
	OTPExpires          time.Time     `bson:"otpExpires,omitempty"    json:"-"`
	IsVerified          bool          `bson:"isVerified"              json:"isVerified"`
	IsPremium           bool          `bson:"isPremium"               json:"isPremium"`
	ResetPasswordToken  string        `bson:"resetPasswordToken,omitempty"  json:"-"`
	ResetPasswordExpire time.Time     `bson:"resetPasswordExpire,omitempty" json:"-"`
	ProfileImage        string        `bson:"profileImage,omitempty"  json:"profileImage,omitempty"`
	CreatedAt           time.Time     `bson:"createdAt"               json:"createdAt"`
}
