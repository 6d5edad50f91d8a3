package client

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/apperr"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/handlers"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/storage"
)

func amount(v float64) *float64 { return &v }

// newTestServer runs the real API against an in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	router := handlers.NewRouter(handlers.NewHandlers(db, []byte("test-secret"), false), "*")
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func loggedInApp(t *testing.T, srv *httptest.Server, username string) *App {
	t.Helper()
	c := New(srv.URL)
	_, err := c.Register(username, "secret123")
	require.NoError(t, err)
	_, _, err = c.Login(username, "secret123")
	require.NoError(t, err)
	return NewApp(c)
}

func TestClientAuthFlow(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	user, err := c.Register("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// Duplicate registration conflicts.
	_, err = c.Register("alice", "secret123")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	// Wrong password and unknown user fail identically.
	_, _, badPass := c.Login("alice", "wrongpass")
	_, _, badUser := c.Login("nobody", "whatever1")
	require.Error(t, badPass)
	require.Error(t, badUser)
	assert.Equal(t, badPass.Error(), badUser.Error())

	token, user, err := c.Login("alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, token, c.Token, "login stores the token on the client")
	assert.Equal(t, "alice", user.Username)
}

func TestClientUnauthenticated(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	_, err := c.ListExpenses()
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	c.Token = "garbage"
	_, err = c.ListExpenses()
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestAppMutationsPatchCache(t *testing.T) {
	srv := newTestServer(t)
	app := loggedInApp(t, srv, "alice")

	created, err := app.Add(models.ExpensePayload{
		Description: "Coffee", Amount: amount(3.50), Category: "Food", Date: "2024-05-01",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Len(t, app.Session.Expenses, 1)

	updated, err := app.Update(created.ID, models.ExpensePayload{
		Description: "Espresso", Amount: amount(4.00), Category: "Drinks", Date: "2024-05-02",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	cached, ok := app.Session.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Espresso", cached.Description)
	assert.Equal(t, "Drinks", cached.Category)

	require.NoError(t, app.Delete(created.ID))
	assert.Empty(t, app.Session.Expenses)
}

func TestAppClientSideValidationRejectsBeforeRequest(t *testing.T) {
	// No server at all: the fast-path check fires first.
	app := NewApp(New("http://127.0.0.1:0"))

	_, err := app.Add(models.ExpensePayload{
		Description: "Coffee", Amount: amount(-1), Category: "Food", Date: "2024-05-01",
	})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestAppUpdateRevertsOnRejection(t *testing.T) {
	srv := newTestServer(t)
	app := loggedInApp(t, srv, "alice")

	created, err := app.Add(models.ExpensePayload{
		Description: "Coffee", Amount: amount(3.50), Category: "Food", Date: "2024-05-01",
	})
	require.NoError(t, err)

	// Delete server-side behind the session's back so the update 404s.
	require.NoError(t, app.Client.DeleteExpense(created.ID))

	_, err = app.Update(created.ID, models.ExpensePayload{
		Description: "Espresso", Amount: amount(4.00), Category: "Drinks", Date: "2024-05-02",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// The optimistic change was rolled back to the previous cached copy.
	cached, ok := app.Session.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Coffee", cached.Description)
	assert.Equal(t, 3.50, cached.Amount)
}

func TestAppDeleteRevertsOnRejection(t *testing.T) {
	srv := newTestServer(t)
	alice := loggedInApp(t, srv, "alice")
	bob := loggedInApp(t, srv, "bob")

	created, err := alice.Add(models.ExpensePayload{
		Description: "Coffee", Amount: amount(3.50), Category: "Food", Date: "2024-05-01",
	})
	require.NoError(t, err)

	// Bob's session somehow holds Alice's record; the server refuses the
	// delete and the optimistic removal is reverted.
	bob.Session.Add(*created)
	err = bob.Delete(created.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	_, ok := bob.Session.Get(created.ID)
	assert.True(t, ok, "rejected delete must restore the cached record")
}

func TestAppRefreshDegradesToEmptyOnError(t *testing.T) {
	srv := newTestServer(t)
	app := loggedInApp(t, srv, "alice")

	_, err := app.Add(models.ExpensePayload{
		Description: "Coffee", Amount: amount(3.50), Category: "Food", Date: "2024-05-01",
	})
	require.NoError(t, err)

	app.Client.Token = "expired-or-garbage"
	err = app.Refresh()
	require.Error(t, err)
	assert.Empty(t, app.Session.Expenses, "stale data must not survive a failed refresh")
}

func TestAppRefreshReplacesCache(t *testing.T) {
	srv := newTestServer(t)
	app := loggedInApp(t, srv, "alice")

	for _, date := range []string{"2024-05-01", "2024-05-03", "2024-05-02"} {
		_, err := app.Add(models.ExpensePayload{
			Description: "On " + date, Amount: amount(5), Category: "Misc", Date: date,
		})
		require.NoError(t, err)
	}

	require.NoError(t, app.Refresh())
	require.Len(t, app.Session.Expenses, 3)
	// Server order: newest date first.
	assert.Equal(t, "2024-05-03", app.Session.Expenses[0].Date)
}
