// Package storage implements the persistence store for expense records
// and user accounts on SQLite.
package storage

import (
	"database/sql"
	"errors"
	"time"

	"modernc.org/sqlite"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/apperr"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
)

// SQLite extended result codes surfaced by the driver.
const (
	sqliteConstraintCheck  = 275  // SQLITE_CONSTRAINT_CHECK
	sqliteConstraintUnique = 2067 // SQLITE_CONSTRAINT_UNIQUE
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	// Required for the users -> expenses ON DELETE CASCADE to fire.
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			description TEXT NOT NULL,
			amount REAL NOT NULL CHECK(amount > 0),
			category TEXT NOT NULL,
			date TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses (user_id)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

// mapStoreError converts SQLite constraint failures into the shared error
// taxonomy so they reach clients as 400/409 instead of 500.
func mapStoreError(err error) error {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqliteConstraintCheck:
			return apperr.Wrap(apperr.Constraint, "amount constraint violated", err)
		case sqliteConstraintUnique:
			return apperr.Wrap(apperr.Conflict, "username already exists", err)
		}
	}
	return err
}

// CreateExpense inserts a new expense and returns the stored record,
// including the generated id and created_at. A nil owner stores an
// unscoped record (the unauthenticated variant).
func (db *DB) CreateExpense(p models.ExpensePayload, owner *int64) (*models.Expense, error) {
	result, err := db.conn.Exec(
		"INSERT INTO expenses (description, amount, category, date, created_at, user_id) VALUES (?, ?, ?, ?, ?, ?)",
		p.Description, *p.Amount, p.Category, p.Date, time.Now().UTC(), owner,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetExpense(id, owner)
}

// GetExpense retrieves a single expense by ID within the owner scope.
func (db *DB) GetExpense(id int64, owner *int64) (*models.Expense, error) {
	query := "SELECT id, description, amount, category, date, created_at, user_id FROM expenses WHERE id = ?"
	args := []any{id}
	if owner != nil {
		query += " AND user_id = ?"
		args = append(args, *owner)
	}

	var e models.Expense
	err := db.conn.QueryRow(query, args...).Scan(
		&e.ID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.CreatedAt, &e.OwnerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "expense not found")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListExpenses retrieves all expenses within the owner scope, ordered by
// date descending with created_at (then id) breaking ties.
func (db *DB) ListExpenses(owner *int64) ([]models.Expense, error) {
	query := "SELECT id, description, amount, category, date, created_at, user_id FROM expenses"
	var args []any
	if owner != nil {
		query += " WHERE user_id = ?"
		args = append(args, *owner)
	}
	query += " ORDER BY date DESC, created_at DESC, id DESC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.CreatedAt, &e.OwnerID); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// UpdateExpense replaces description, amount, category and date of an
// expense atomically. ID, created_at and ownership never change. Returns
// NotFound when the id does not exist under the owner scope; whether the
// record is missing or owned by someone else is not distinguished.
func (db *DB) UpdateExpense(id int64, p models.ExpensePayload, owner *int64) (*models.Expense, error) {
	query := "UPDATE expenses SET description = ?, amount = ?, category = ?, date = ? WHERE id = ?"
	args := []any{p.Description, *p.Amount, p.Category, p.Date, id}
	if owner != nil {
		query += " AND user_id = ?"
		args = append(args, *owner)
	}

	result, err := db.conn.Exec(query, args...)
	if err != nil {
		return nil, mapStoreError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperr.New(apperr.NotFound, "expense not found or permission denied")
	}

	return db.GetExpense(id, owner)
}

// DeleteExpense removes an expense within the owner scope. Deleting an
// already-deleted id reports NotFound, so the operation is idempotent in
// effect.
func (db *DB) DeleteExpense(id int64, owner *int64) error {
	query := "DELETE FROM expenses WHERE id = ?"
	args := []any{id}
	if owner != nil {
		query += " AND user_id = ?"
		args = append(args, *owner)
	}

	result, err := db.conn.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.NotFound, "expense not found or permission denied")
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// CreateUser creates a new user with the given username and password hash.
// A duplicate username surfaces as a Conflict.
func (db *DB) CreateUser(username, passwordHash string) (*models.User, error) {
	result, err := db.conn.Exec(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		username, passwordHash,
	)
	if err != nil {
		return nil, mapStoreError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetUserByID(id)
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(id int64) (*models.User, error) {
	return db.getUser("SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id)
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	return db.getUser("SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
}

func (db *DB) getUser(query string, arg any) (*models.User, error) {
	var u models.User
	err := db.conn.QueryRow(query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes a user account. The foreign key cascade deletes the
// user's expense records with it.
func (db *DB) DeleteUser(id int64) error {
	result, err := db.conn.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
