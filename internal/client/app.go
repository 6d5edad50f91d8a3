package client

import (
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
)

// App couples the API client with the session cache and keeps the two in
// step: each successful mutation patches the cache element-wise, and any
// operation the server rejects reverts the corresponding optimistic
// change, so the cache never diverges from server state.
type App struct {
	Client  *Client
	Session *Session
}

// NewApp creates an App around a fresh session.
func NewApp(c *Client) *App {
	return &App{Client: c, Session: NewSession()}
}

// Refresh rebuilds the cache from scratch, as on load or login.
func (a *App) Refresh() error {
	expenses, err := a.Client.ListExpenses()
	if err != nil {
		// Degrade to an empty list rather than showing stale data.
		a.Session.ReplaceAll(nil)
		return err
	}
	a.Session.ReplaceAll(expenses)
	return nil
}

// Add persists a new record and appends the server's stored copy (with
// generated id and created_at) to the cache.
func (a *App) Add(p models.ExpensePayload) (*models.Expense, error) {
	expense, err := a.Client.CreateExpense(p)
	if err != nil {
		return nil, err
	}
	a.Session.Add(*expense)
	return expense, nil
}

// Update optimistically applies the replacement locally, then confirms
// with the server. On rejection the previous cached record is restored.
func (a *App) Update(id int64, p models.ExpensePayload) (*models.Expense, error) {
	prev, hadPrev := a.Session.Get(id)
	if hadPrev && p.Amount != nil {
		a.Session.Put(models.Expense{
			ID:          id,
			Description: p.Description,
			Amount:      *p.Amount,
			Category:    p.Category,
			Date:        p.Date,
			CreatedAt:   prev.CreatedAt,
			OwnerID:     prev.OwnerID,
		})
	}

	expense, err := a.Client.UpdateExpense(id, p)
	if err != nil {
		if hadPrev {
			a.Session.Put(prev)
		}
		return nil, err
	}
	a.Session.Put(*expense)
	return expense, nil
}

// Delete optimistically removes the record locally, restoring it if the
// server rejects the deletion.
func (a *App) Delete(id int64) error {
	prev, hadPrev := a.Session.Get(id)
	if hadPrev {
		a.Session.Remove(id)
	}

	if err := a.Client.DeleteExpense(id); err != nil {
		if hadPrev {
			a.Session.Add(prev)
		}
		return err
	}
	return nil
}
