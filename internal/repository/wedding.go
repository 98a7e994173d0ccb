package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shagunapp/shagun-api/internal/model"
)

// WeddingRepository defines the interface for wedding-related database operations.
type WeddingRepository interface {
	CreateWedding(ctx context.Context, wedding *model.Wedding) (*model.Wedding, error)

	// GetOwnedWedding retrieves a wedding by id only when it belongs to userID.
	GetOwnedWedding(ctx context.Context, id string, userID bson.ObjectID) (*model.Wedding, error)

	// ListWeddingsByUser returns all weddings of a user, wedding date descending.
	ListWeddingsByUser(ctx context.Context, userID bson.ObjectID) ([]*model.Wedding, error)

	// LatestWeddingByUser returns the most-recently-created wedding of a user.
	LatestWeddingByUser(ctx context.Context, userID bson.ObjectID) (*model.Wedding, error)

	// UpdateWedding applies a partial update to a wedding owned by userID.
	UpdateWedding(ctx context.Context, id string, userID bson.ObjectID, params UpdateWeddingParams) (*model.Wedding, error)

	// ListWeddingIDs returns the ids of all weddings owned by userID.
	ListWeddingIDs(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)

	// DeleteWeddingsByUser removes all weddings owned by userID.
	DeleteWeddingsByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
}

// UpdateWeddingParams defines the optional parameters for updating a wedding.
// Only the fields that are not nil will be updated.
type UpdateWeddingParams struct {
	GroomName   *string
	BrideName   *string
	GroomImage  *string
	BrideImage  *string
	Date        *time.Time
	TotalBudget *float64
}

const weddingCollection = "weddings"

type weddingMongoRepository struct {
	db *mongo.Database
}

func NewWeddingMongoRepository(db *mongo.Database) WeddingRepository {
	return &weddingMongoRepository{db: db}
}

func (r *weddingMongoRepository) CreateWedding(ctx context.Context, wedding *model.Wedding) (*model.Wedding, error) {
	wedding.CreatedAt = time.Now()

	result, err := r.db.Collection(weddingCollection).InsertOne(ctx, wedding)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		wedding.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return wedding, nil
}

func (r *weddingMongoRepository) GetOwnedWedding(
	ctx context.Context,
	id string,
	userID bson.ObjectID,
) (*model.Wedding, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(weddingCollection).FindOne(ctx, bson.M{"_id": objectID, "user": userID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var wedding model.Wedding
	if err := result.Decode(&wedding); err != nil {
		return nil, err
	}

	return &wedding, nil
}

func (r *weddingMongoRepository) ListWeddingsByUser(
	ctx context.Context,
	userID bson.ObjectID,
) ([]*model.Wedding, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.db.Collection(weddingCollection).Find(ctx, bson.M{"user": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var weddings []*model.Wedding
	if err := cursor.All(ctx, &weddings); err != nil {
		return nil, err
	}

	return weddings, nil
}

func (r *weddingMongoRepository) LatestWeddingByUser(
	ctx context.Context,
	userID bson.ObjectID,
) (*model.Wedding, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	result := r.db.Collection(weddingCollection).FindOne(ctx, bson.M{"user": userID}, findOptions)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var wedding model.Wedding
	if err := result.Decode(&wedding); err != nil {
		return nil, err
	}

	return &wedding, nil
}

func (r *weddingMongoRepository) UpdateWedding(
	ctx context.Context,
	id string,
	userID bson.ObjectID,
	params UpdateWeddingParams,
) (*model.Wedding, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	updateMap := bson.M{}
	if params.GroomName != nil {
		updateMap["groomName"] = *params.GroomName
	}
	if params.BrideName != nil {
		updateMap["brideName"] = *params.BrideName
	}
	if params.GroomImage != nil {
		updateMap["groomImage"] = *params.GroomImage
	}
	if params.BrideImage != nil {
		updateMap["brideImage"] = *params.BrideImage
	}
	if params.Date != nil {
		updateMap["date"] = *params.Date
	}
	if params.TotalBudget != nil {
		updateMap["totalBudget"] = *params.TotalBudget
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no wedding fields to update")
	}

	result := r.db.Collection(weddingCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID, "user": userID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var wedding model.Wedding
	if err := result.Decode(&wedding); err != nil {
		return nil, err
	}

	return &wedding, nil
}

func (r *weddingMongoRepository) ListWeddingIDs(
	ctx context.Context,
	userID bson.ObjectID,
) ([]bson.ObjectID, error) {
	findOptions := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := r.db.Collection(weddingCollection).Find(ctx, bson.M{"user": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]bson.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}

	return ids, nil
}

func (r *weddingMongoRepository) DeleteWeddingsByUser(
	ctx context.Context,
	userID bson.ObjectID,
) (int64, error) {
	result, err := r.db.Collection(weddingCollection).DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
