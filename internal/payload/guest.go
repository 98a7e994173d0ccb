package payload

type AddGuestRequest struct {
	WeddingID   string `json:"weddingId"`
	Name        string `json:"name"        validate:"required"`
	CityVillage string `json:"cityVillage"`
	FamilyCount int    `json:"familyCount" validate:"omitempty,gte=1"`
}

type UpdateGuestRequest struct {
	Name         *string  `json:"name"`
	CityVillage  *string  `json:"cityVillage"`
	FamilyCount  *int     `json:"familyCount"  validate:"omitempty,gte=1"`
	IsInvited    *bool    `json:"isInvited"`
	ShagunAmount *float64 `json:"shagunAmount" validate:"omitempty,gte=0"`
}
