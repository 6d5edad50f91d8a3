package e2e

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/apperr"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/client"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
)

// E2ETestSuite drives the running server over HTTP the way the terminal
// client does, covering the full register/login/CRUD flow.
type E2ETestSuite struct {
	suite.Suite
	app      *client.App
	username string
}

// SetupTest registers a fresh account so tests stay independent even
// though they share one server process.
func (suite *E2ETestSuite) SetupTest() {
	suite.username = fmt.Sprintf("user_%d", time.Now().UnixNano())

	c := client.New(appURL)
	_, err := c.Register(suite.username, "password123")
	require.NoError(suite.T(), err, "could not register account")

	_, _, err = c.Login(suite.username, "password123")
	require.NoError(suite.T(), err, "could not log in")

	suite.app = client.NewApp(c)
	require.NoError(suite.T(), suite.app.Refresh())
}

func (suite *E2ETestSuite) amount(v float64) *float64 { return &v }

func (suite *E2ETestSuite) TestRegisterDuplicateRejected() {
	c := client.New(appURL)
	_, err := c.Register(suite.username, "otherpass123")
	suite.Equal(apperr.Conflict, apperr.KindOf(err))
}

func (suite *E2ETestSuite) TestLoginWrongPasswordRejected() {
	c := client.New(appURL)
	_, _, err := c.Login(suite.username, "wrongpassword")
	suite.Equal(apperr.Unauthenticated, apperr.KindOf(err))
	suite.Equal("invalid username or password", apperr.Message(err))
}

func (suite *E2ETestSuite) TestExpenseLifecycle() {
	created, err := suite.app.Add(models.ExpensePayload{
		Description: "Train ticket",
		Amount:      suite.amount(42.50),
		Category:    "Travel",
		Date:        "2024-03-15",
	})
	suite.Require().NoError(err)
	suite.NotZero(created.ID)

	// A second client for the same account sees the record.
	c2 := client.New(appURL)
	_, _, err = c2.Login(suite.username, "password123")
	suite.Require().NoError(err)
	listed, err := c2.ListExpenses()
	suite.Require().NoError(err)
	suite.Require().Len(listed, 1)
	suite.Equal("Train ticket", listed[0].Description)

	updated, err := suite.app.Update(created.ID, models.ExpensePayload{
		Description: "Train ticket (return)",
		Amount:      suite.amount(85.00),
		Category:    "Travel",
		Date:        "2024-03-16",
	})
	suite.Require().NoError(err)
	suite.Equal(created.ID, updated.ID)
	suite.Equal(85.00, updated.Amount)

	suite.Require().NoError(suite.app.Delete(created.ID))

	listed, err = c2.ListExpenses()
	suite.Require().NoError(err)
	suite.Empty(listed)
}

func (suite *E2ETestSuite) TestAccountsAreIsolated() {
	_, err := suite.app.Add(models.ExpensePayload{
		Description: "Groceries",
		Amount:      suite.amount(31.20),
		Category:    "Food",
		Date:        "2024-03-10",
	})
	suite.Require().NoError(err)

	other := client.New(appURL)
	otherName := fmt.Sprintf("other_%d", time.Now().UnixNano())
	_, err = other.Register(otherName, "password123")
	suite.Require().NoError(err)
	_, _, err = other.Login(otherName, "password123")
	suite.Require().NoError(err)

	listed, err := other.ListExpenses()
	suite.Require().NoError(err)
	suite.Empty(listed, "accounts must not see each other's records")
}

// TestServerSideValidation bypasses the client's fast-path checks with a
// raw request so the server's own validation is what rejects it.
func (suite *E2ETestSuite) TestServerSideValidation() {
	body := strings.NewReader(`{"description":"Bad date","amount":5,"category":"Misc","date":"2024-13-40"}`)
	req, err := http.NewRequest(http.MethodPost, appURL+"/api/expenses", body)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.app.Client.Token)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	listed, err := suite.app.Client.ListExpenses()
	suite.Require().NoError(err)
	suite.Empty(listed)
}

func TestE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e tests in short mode")
	}
	suite.Run(t, new(E2ETestSuite))
}
