// Package validation holds the pure field checks applied to candidate
// expense records. The server's check is authoritative; the client runs
// the same checks as a fast-path before issuing a request.
package validation

import (
	"math"
	"regexp"
	"time"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/apperr"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// MaxTextLen bounds description and category length. The wire format puts
// no limit on these, so the store boundary enforces one.
const MaxTextLen = 255

// Expense checks a candidate record and returns it unchanged on success.
// Checks run in order and stop at the first failure.
func Expense(p models.ExpensePayload) (models.ExpensePayload, error) {
	if p.Description == "" || p.Amount == nil || p.Category == "" || p.Date == "" {
		return p, apperr.New(apperr.Validation, "missing required fields")
	}
	if math.IsNaN(*p.Amount) || math.IsInf(*p.Amount, 0) || *p.Amount <= 0 {
		return p, apperr.New(apperr.Validation, "invalid amount (must be > 0)")
	}
	if !datePattern.MatchString(p.Date) {
		return p, apperr.New(apperr.Validation, "invalid date format (YYYY-MM-DD)")
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return p, apperr.New(apperr.Validation, "invalid date value")
	}
	if len(p.Description) > MaxTextLen || len(p.Category) > MaxTextLen {
		return p, apperr.New(apperr.Validation, "description and category must be at most 255 characters")
	}
	return p, nil
}

// Credentials checks a registration or login submission. The password
// length floor only matters for registration; login accepts anything
// non-empty and lets the credential comparison fail instead.
func Credentials(username, password string, enforceLength bool) error {
	if username == "" || password == "" {
		return apperr.New(apperr.Validation, "username and password are required")
	}
	if enforceLength && len(password) < 6 {
		return apperr.New(apperr.Validation, "password must be at least 6 characters long")
	}
	if len(username) > MaxTextLen {
		return apperr.New(apperr.Validation, "username must be at most 255 characters")
	}
	return nil
}
