package billing

import (
	"errors"
	"time"

	"studybilling/internal/course"
)

type TransactionType string

const (
	TypePayment TransactionType = "payment"
	TypeDeposit TransactionType = "deposit"
)

var ErrUnknownTransactionType = errors.New("unknown transaction type")

func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TypePayment, TypeDeposit:
		return t, nil
	default:
		return "", ErrUnknownTransactionType
	}
}

// Transaction is an immutable ledger row: it is only ever inserted, never
// updated or deleted.
type Transaction struct {
	ID        int             `db:"id" json:"id"`
	UserID    int             `db:"user_id" json:"user_id"`
	CourseID  *int            `db:"course_id" json:"course_id,omitempty"`
	Type      TransactionType `db:"type" json:"type"`
	Value     float64         `db:"value" json:"value"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	ExpiresAt *time.Time      `db:"expires_at" json:"expires_at,omitempty"`
}

// TransactionWithCourse carries the linked course code and title for read
// paths. Both are nil for deposits.
type TransactionWithCourse struct {
	Transaction
	CourseCode  *string `db:"course_code" json:"course_code,omitempty"`
	CourseTitle *string `db:"course_title" json:"course_title,omitempty"`
}

// EndingRental is a rental payment whose access expires soon, joined with
// the owner's contact info for the notification job.
type EndingRental struct {
	TransactionID int       `db:"transaction_id"`
	UserID        int       `db:"user_id"`
	UserEmail     string    `db:"user_email"`
	CourseTitle   string    `db:"course_title"`
	ExpiresAt     time.Time `db:"expires_at"`
}

// ReportRow is one line of the monthly payment report: payments per course.
type ReportRow struct {
	CourseTitle string          `db:"course_title" json:"course_title"`
	Type        TransactionType `db:"type" json:"type"`
	Count       int             `db:"count" json:"count"`
	Total       float64         `db:"total" json:"total"`
}

// Filter narrows a user's transaction history. Nil fields mean "no
// restriction"; SkipExpired hides lapsed rentals while keeping perpetual
// entries.
type Filter struct {
	Type        *TransactionType
	CourseCode  *string
	SkipExpired bool
}

// PaymentResult pairs the created ledger row with the paid course's type so
// callers can shape their response without a second lookup.
type PaymentResult struct {
	Transaction *Transaction `json:"transaction"`
	CourseType  course.Type  `json:"course_type"`
}

type DepositRequest struct {
	Amount float64 `json:"amount" binding:"gte=0" example:"100.50"`
}

type DepositResponse struct {
	Message string  `json:"message" example:"balance recharged"`
	Balance float64 `json:"balance" example:"1250.99"`
}

type PayResponse struct {
	Success    bool       `json:"success" example:"true"`
	CourseType string     `json:"course_type" example:"rent"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type TransactionResponse struct {
	ID         int        `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	Type       string     `json:"type" example:"payment"`
	Amount     float64    `json:"amount" example:"299.99"`
	CourseCode *string    `json:"course_code,omitempty" example:"python-junior"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}
