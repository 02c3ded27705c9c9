package dto

type OCRRequest struct {
	FileURL string `json:"file_url" validate:"required"`
	TripID  string `json:"trip_id" validate:"required,uuid4"`
}

// ExtractedData is the structured receipt contract: every field is always
// present in the response, empty when the parsers found nothing.
type ExtractedData struct {
	VendorName    string  `json:"Vendor/Store"`
	Amount        float64 `json:"Amount"`
	Currency      string  `json:"Currency"`
	Date          string  `json:"Date"`
	Category      string  `json:"Category"`
	Description   string  `json:"Description"`
	PaymentMethod string  `json:"Payment Method,omitempty"`
	TaxAmount     float64 `json:"Tax Amount"`
	DocumentID    string  `json:"Document ID or Reference Number,omitempty"`
}

type OCRResponse struct {
	Message       string        `json:"message"`
	ExpenseID     string        `json:"expense_id"`
	ExtractedData ExtractedData `json:"extracted_data"`
	Summary       string        `json:"summary"`
	DocumentURL   string        `json:"document_url"`
	StoredAt      string        `json:"stored_at"`
}
