package core

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultCategories are suggested to the UI alongside whatever
// categories already exist in the data. They are not an enumeration:
// any string is a valid category.
var DefaultCategories = []string{
	"Food",
	"Transport",
	"Bills",
	"Entertainment",
	"Health",
	"Shopping",
	"Education",
	"Travel",
	"Other",
}

type (
	// Expense is the sole persisted entity: one discrete spending event.
	Expense struct {
		ID          int64
		Amount      Money
		Description string
		Category    string
		Date        string // canonical YYYY-MM-DD
		CreatedAt   time.Time
		UpdatedAt   *time.Time // nil until the record is first updated
	}

	// NewExpense carries the caller-supplied fields of an add command.
	// Date may be empty; the store substitutes the current date.
	NewExpense struct {
		Amount      Money
		Description string
		Category    string
		Date        string
	}

	// ExpenseUpdate carries a partial field set for an update command.
	// Nil fields keep their stored values.
	ExpenseUpdate struct {
		Amount      *Money
		Description *string
		Category    *string
		Date        *string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
)

// Validate checks the caller-supplied fields of an add command.
// Date normalization is the store's job and is not checked here.
func (e NewExpense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	return nil
}

// IsEmpty reports whether the update carries no fields at all.
func (u ExpenseUpdate) IsEmpty() bool {
	return u.Amount == nil && u.Description == nil && u.Category == nil && u.Date == nil
}

// Validate checks the fields the update actually carries.
func (u ExpenseUpdate) Validate() error {
	if u.Amount != nil {
		if err := u.Amount.Validate(); err != nil {
			return err
		}
	}
	if u.Description != nil && len(strings.TrimSpace(*u.Description)) == 0 {
		return ErrEmptyDescription
	}
	return nil
}

// NormalizeCategory uppercases the first rune and leaves the rest as
// typed. This is a stored-data contract, not a display nicety: only
// the leading character is touched, never the remainder.
func NormalizeCategory(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
