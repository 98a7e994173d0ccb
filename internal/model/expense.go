package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Expense is a budget line item scoped to a wedding.
type Expense struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Wedding    bson.ObjectID `bson:"wedding"       json:"wedding"`
	Title      string        `bson:"title"         json:"title"`
	Amount     float64       `bson:"amount"        json:"amount"`
	PaidAmount float64       `bson:"paidAmount"    json:"paidAmount"`
	Category   string        `bson:"category"      json:"category"`
	Date       time.Time     `bson:"date"          json:"date"`
}
