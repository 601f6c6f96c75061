package billing

import (
	"context"
	"time"

	"studybilling/internal/user"
)

type Repository interface {
	// CreatePayment atomically re-checks the user's balance against price,
	// debits value and inserts the payment row. Both writes commit together
	// or not at all.
	CreatePayment(ctx context.Context, userID, courseID int, price, value float64, occurredAt time.Time, expiresAt *time.Time) (*Transaction, error)
	// CreateDeposit atomically credits amount and inserts the deposit row,
	// returning the updated user.
	CreateDeposit(ctx context.Context, userID int, amount float64, occurredAt time.Time) (*user.User, error)
	Filtered(ctx context.Context, username string, f Filter) ([]TransactionWithCourse, error)
	EndingSoon(ctx context.Context, within time.Duration) ([]EndingRental, error)
	MonthlyReport(ctx context.Context, start, end time.Time) ([]ReportRow, error)
}
