package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Wedding is the ownership root for guests, expenses and shagun entries.
// A user may own several; the most-recently-created one acts as the
// implicit context when no explicit id is passed.
type Wedding struct {
	ID          bson.ObjectID `bson:"_id,omitempty"         json:"_id"`
	User        bson.ObjectID `bson:"user"                  json:"user"`
	GroomName   string        `bson:"groomName"             json:"groomName"`
	BrideName   string        `bson:"brideName"             json:"brideName"`
	GroomImage  string        `bson:"groomImage,omitempty"  json:"groomImage,omitempty"`
	BrideImage  string        `bson:"brideImage,omitempty"  json:"brideImage,omitempty"`
	Date        time.Time     `bson:"date"                  json:"date"`
	TotalBudget float64       `bson:"totalBudget"           json:"totalBudget"`
	CreatedAt   time.Time     `bson:"createdAt"             json:"createdAt"`
}
