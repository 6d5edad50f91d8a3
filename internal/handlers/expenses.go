package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/apperr"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/validation"
)

// ListExpenses returns every record in the caller's scope, newest date
// first. The full set is returned each time; there is no pagination.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.db.ListExpenses(h.ownerScope(r))
	if err != nil {
		errorJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// CreateExpense validates a payload and persists a new record, returning
// the stored record so the caller can reconcile its cache without a
// second round trip.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var payload models.ExpensePayload
	if err := decodeJSON(r, &payload); err != nil {
		errorJSON(w, err)
		return
	}

	payload, err := validation.Expense(payload)
	if err != nil {
		errorJSON(w, err)
		return
	}

	expense, err := h.db.CreateExpense(payload, h.ownerScope(r))
	if err != nil {
		errorJSON(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// UpdateExpense replaces an existing record in full.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := expenseID(r)
	if err != nil {
		errorJSON(w, err)
		return
	}

	var payload models.ExpensePayload
	if err := decodeJSON(r, &payload); err != nil {
		errorJSON(w, err)
		return
	}

	payload, err = validation.Expense(payload)
	if err != nil {
		errorJSON(w, err)
		return
	}

	expense, err := h.db.UpdateExpense(id, payload, h.ownerScope(r))
	if err != nil {
		errorJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// DeleteExpense removes a record and reports the deleted identifier.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := expenseID(r)
	if err != nil {
		errorJSON(w, err)
		return
	}

	if err := h.db.DeleteExpense(id, h.ownerScope(r)); err != nil {
		errorJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Expense %d deleted", id)})
}

func expenseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.Validation, "invalid expense ID")
	}
	return id, nil
}
