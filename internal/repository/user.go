package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shagunapp/shagun-api/internal/model"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByMobile(ctx context.Context, mobile string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*model.User, error)
	DeleteUser(ctx context.Context, id string) (*model.User, error)
}

// UpdateUserParams defines the optional parameters for updating a user.
// Only the fields that are not nil will be updated; the Clear flags
// unset the corresponding short-lived fields.
type UpdateUserParams struct {
	Name                *string
	Email               *string
	Mobile              *string
	Password            *string
	OTP                 *string
	OTPExpires          *time.Time
	IsVerified          *bool
	IsPremium           *bool
	ResetPasswordToken  *string
	ResetPasswordExpire *time.Time
	ProfileImage        *string

	ClearOTP        bool
	ClearResetToken bool
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "mobile", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	user.CreatedAt = time.Now()

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userMongoRepository) GetUserByMobile(ctx context.Context, mobile string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"mobile": mobile})
}

func (r *userMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) UpdateUser(
	ctx context.Context,
	id string,
	params UpdateUserParams,
) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	setMap := bson.M{}
	if params.Name != nil {
		setMap["name"] = *params.Name
	}
	if params.Email != nil {
		setMap["email"] = *params.Email
	}
	if params.Mobile != nil {
		setMap["mobile"] = *params.Mobile
	}
	if params.Password != nil {
		setMap["password"] = *params.Password
	}
	if params.OTP != nil {
		setMap["otp"] = *params.OTP
	}
	if params.OTPExpires != nil {
		setMap["otpExpires"] = *params.OTPExpires
	}
	if params.IsVerified != nil {
		setMap["isVerified"] = *params.IsVerified
	}
	if params.IsPremium != nil {
		setMap["isPremium"] = *params.IsPremium
	}
	if params.ResetPasswordToken != nil {
		setMap["resetPasswordToken"] = *params.ResetPasswordToken
	}
	if params.ResetPasswordExpire != nil {
		setMap["resetPasswordExpire"] = *params.ResetPasswordExpire
	}
	if params.ProfileImage != nil {
		setMap["profileImage"] = *params.ProfileImage
	}

	unsetMap := bson.M{}
	if params.ClearOTP {
		unsetMap["otp"] = ""
		unsetMap["otpExpires"] = ""
	}
	if params.ClearResetToken {
		unsetMap["resetPasswordToken"] = ""
		unsetMap["resetPasswordExpire"] = ""
	}

	if len(setMap) == 0 && len(unsetMap) == 0 {
		return nil, errors.New("no user fields to update")
	}

	update := bson.M{}
	if len(setMap) > 0 {
		update["$set"] = setMap
	}
	if len(unsetMap) > 0 {
		update["$unset"] = unsetMap
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}
