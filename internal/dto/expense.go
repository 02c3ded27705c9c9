package dto

type CreateExpenseRequest struct {
	TripID          string  `json:"trip_id" validate:"omitempty,uuid4"`
	VendorName      string  `json:"vendor_name" validate:"required"`
	Category        string  `json:"category" validate:"required"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Currency        string  `json:"currency" validate:"required,max=10"`
	TaxAmount       float64 `json:"tax_amount" validate:"gte=0"`
	PaymentMethod   string  `json:"payment_method"`
	TransactionDate string  `json:"transaction_date" validate:"omitempty,datetime=2006-01-02"`
	DocumentURL     string  `json:"document_url"`
}

type ExpenseResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	TripID          string  `json:"trip_id,omitempty"`
	VendorName      string  `json:"vendor_name"`
	Category        string  `json:"category"`
	Description     string  `json:"description,omitempty"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	TaxAmount       float64 `json:"tax_amount"`
	PaymentMethod   string  `json:"payment_method,omitempty"`
	TransactionDate string  `json:"transaction_date"`
	DocumentURL     string  `json:"document_url,omitempty"`
	ReceiptCID      string  `json:"receipt_cid,omitempty"`
	LedgerTxHash    string  `json:"ledger_tx_hash,omitempty"`
	Status          string  `json:"status"`
	Summary         string  `json:"summary,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type CreateExpenseResponse struct {
	ExpenseID       string `json:"expenseId"`
	TransactionHash string `json:"transactionHash,omitempty"`
	ReceiptCID      string `json:"receiptCid,omitempty"`
	Status          string `json:"status"`
}
