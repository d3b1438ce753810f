package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryTypeIncome  = "Income"
	CategoryTypeExpense = "Expense"
)

// User is an account record. Users are only ever created; there is no
// update or delete path. Password is stored as entered, matching the
// persisted data format of the original client.
type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	CreatedDate time.Time `json:"createdDate"`
}

// Category groups transactions. Name is unique per owner, compared
// case-insensitively. Color is a display hint for the UI layer.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Type        string `json:"type"`
	UserID      int    `json:"userId"`
}

// Income is a recorded earning. Category is populated transiently on read
// and is nil when the referenced category no longer exists; it is never
// persisted.
type Income struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	CategoryID  int             `json:"categoryId"`
	UserID      int             `json:"userId"`
	Notes       string          `json:"notes,omitempty"`

	Category *Category `json:"-"`
}

// Expense is a recorded spending. Same shape and rules as Income, kept as
// a separate type because the two live in separate stores.
type Expense struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	CategoryID  int             `json:"categoryId"`
	UserID      int             `json:"userId"`
	Notes       string          `json:"notes,omitempty"`

	Category *Category `json:"-"`
}
