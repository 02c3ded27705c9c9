package dto

type CreateTripRequest struct {
	Name      string  `json:"name" validate:"required"`
	Budget    float64 `json:"budget" validate:"gte=0"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type TripResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Budget    float64 `json:"budget"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	CreatedAt string  `json:"created_at"`
}
