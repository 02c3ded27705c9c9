package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type ExpenseStatus string

const (
	StatusPending  ExpenseStatus = "pending"
	StatusApproved ExpenseStatus = "approved"
	StatusRejected ExpenseStatus = "rejected"
)

type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "food"
	CategoryTravel         ExpenseCategory = "travel"
	CategoryTransport      ExpenseCategory = "transport"
	CategoryAccommodation  ExpenseCategory = "accommodation"
	CategoryUtilities      ExpenseCategory = "utilities"
	CategoryOfficeSupplies ExpenseCategory = "office supplies"
	CategoryEntertainment  ExpenseCategory = "entertainment"
	CategoryHealthcare     ExpenseCategory = "healthcare"
	CategoryOther          ExpenseCategory = "other"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransition reports whether an expense may move between the two
// statuses. Pending is the only non-terminal state; approvals never revert.
func CanTransition(from, to ExpenseStatus) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}

type Expense struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	TripID          uuid.UUID       `db:"trip_id"`
	VendorName      string          `db:"vendor_name"`
	Category        ExpenseCategory `db:"category"`
	Description     string          `db:"description"`
	Amount          float64         `db:"amount"`
	Currency        string          `db:"currency"`
	TaxAmount       float64         `db:"tax_amount"`
	PaymentMethod   string          `db:"payment_method"`
	TransactionDate time.Time       `db:"transaction_date"`
	DocumentURL     string          `db:"document_url"`
	ReceiptCID      string          `db:"receipt_cid"`
	LedgerTxHash    string          `db:"ledger_tx_hash"`
	Status          ExpenseStatus   `db:"status"`
	ExtractedData   string          `db:"extracted_data"` // JSON blob of OCR output
	Summary         string          `db:"summary"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// Transition applies a status change, enforcing one-way pending->terminal.
func (e *Expense) Transition(to ExpenseStatus) error {
	if !CanTransition(e.Status, to) {
		return ErrInvalidTransition
	}
	e.Status = to
	e.UpdatedAt = time.Now()
	return nil
}
