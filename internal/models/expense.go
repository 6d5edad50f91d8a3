package models

import "time"

// Expense represents a persisted expense record. Date is kept as a
// canonical YYYY-MM-DD string; it has no time component.
type Expense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	OwnerID     *int64    `json:"owner_id,omitempty"`
}

// ExpensePayload is a candidate record submitted for create or update.
// Amount is a pointer so a missing field is distinguishable from zero.
type ExpensePayload struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
}

// User represents a user account. The password hash never serializes.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
