package payload

import (
	"time"

	"github.com/shagunapp/shagun-api/internal/model"
)

type CreateWeddingRequest struct {
	GroomName  string    `json:"groomName"  validate:"required"`
	BrideName  string    `json:"brideName"  validate:"required"`
	GroomImage string    `json:"groomImage"`
	BrideImage string    `json:"brideImage"`
	Date       time.Time `json:"date"       validate:"required"`
}

type UpdateWeddingRequest struct {
	GroomName   *string    `json:"groomName"`
	BrideName   *string    `json:"brideName"`
	GroomImage  *string    `json:"groomImage"`
	BrideImage  *string    `json:"brideImage"`
	Date        *time.Time `json:"date"`
	TotalBudget *float64   `json:"totalBudget" validate:"omitempty,gte=0"`
}

// WeddingStatistics is the dashboard block attached to the wedding
// context response.
type WeddingStatistics struct {
	GuestCount int64   `json:"guestCount"`
	TotalSpent float64 `json:"totalSpent"`
}

// MyWeddingResponse is the resolved wedding context together with its
// dashboard statistics.
type MyWeddingResponse struct {
	*model.Wedding
	StartStatistics WeddingStatistics `json:"startStatistics"`
}
