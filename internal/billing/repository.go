package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studybilling/internal/db"
	"studybilling/internal/user"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrInsufficientFunds = errors.New("not enough balance")
	// ErrConflict means a concurrent commit invalidated this operation; the
	// caller should retry from a fresh read.
	ErrConflict = errors.New("concurrent balance update conflict")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) CreatePayment(ctx context.Context, userID, courseID int, price, value float64, occurredAt time.Time, expiresAt *time.Time) (*Transaction, error) {
	var tr Transaction
	err := db.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// Перечитываем баланс под блокировкой строки
		var balance float64
		err := tx.QueryRowxContext(ctx,
			`SELECT balance FROM users WHERE id = $1 FOR UPDATE`,
			userID,
		).Scan(&balance)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return user.ErrUserNotFound
			}
			return err
		}

		if balance < price {
			return ErrInsufficientFunds
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE users SET balance = balance - $1 WHERE id = $2`,
			value, userID,
		)
		if err != nil {
			return err
		}

		return tx.QueryRowxContext(ctx,
			`INSERT INTO transactions (user_id, course_id, type, value, created_at, expires_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, user_id, course_id, type, value, created_at, expires_at`,
			userID, courseID, TypePayment, value, occurredAt, expiresAt,
		).StructScan(&tr)
	})
	if err != nil {
		return nil, mapTxError(err)
	}

	return &tr, nil
}

func (r *repository) CreateDeposit(ctx context.Context, userID int, amount float64, occurredAt time.Time) (*user.User, error) {
	var u user.User
	err := db.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			`SELECT id FROM users WHERE id = $1 FOR UPDATE`,
			userID,
		).Scan(&u.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return user.ErrUserNotFound
			}
			return err
		}

		err = tx.QueryRowxContext(ctx,
			`UPDATE users SET balance = balance + $1 WHERE id = $2
			 RETURNING id, email, password_hash, role, balance, created_at`,
			amount, userID,
		).StructScan(&u)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO transactions (user_id, type, value, created_at)
			 VALUES ($1, $2, $3, $4)`,
			userID, TypeDeposit, amount, occurredAt,
		)
		return err
	})
	if err != nil {
		return nil, mapTxError(err)
	}

	return &u, nil
}

func (r *repository) Filtered(ctx context.Context, username string, f Filter) ([]TransactionWithCourse, error) {
	query := `
		SELECT t.id, t.user_id, t.course_id, t.type, t.value, t.created_at, t.expires_at,
		       c.code AS course_code, c.title AS course_title
		FROM transactions t
		JOIN users u ON u.id = t.user_id
		LEFT JOIN courses c ON c.id = t.course_id
		WHERE u.email = $1`
	args := []interface{}{username}

	if f.Type != nil {
		args = append(args, *f.Type)
		query += fmt.Sprintf(" AND t.type = $%d", len(args))
	}
	if f.CourseCode != nil {
		args = append(args, *f.CourseCode)
		query += fmt.Sprintf(" AND c.code = $%d", len(args))
	}
	if f.SkipExpired {
		args = append(args, time.Now())
		query += fmt.Sprintf(" AND (t.expires_at IS NULL OR t.expires_at > $%d)", len(args))
	}

	query += " ORDER BY t.id"

	txs := []TransactionWithCourse{}
	if err := r.db.SelectContext(ctx, &txs, query, args...); err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *repository) EndingSoon(ctx context.Context, within time.Duration) ([]EndingRental, error) {
	now := time.Now()

	query := `
		SELECT t.id AS transaction_id, t.user_id, u.email AS user_email,
		       c.title AS course_title, t.expires_at
		FROM transactions t
		JOIN users u ON u.id = t.user_id
		JOIN courses c ON c.id = t.course_id
		WHERE t.type = $1 AND t.expires_at BETWEEN $2 AND $3
		ORDER BY t.expires_at, t.id`

	rentals := []EndingRental{}
	if err := r.db.SelectContext(ctx, &rentals, query, TypePayment, now, now.Add(within)); err != nil {
		return nil, err
	}

	return rentals, nil
}

func (r *repository) MonthlyReport(ctx context.Context, start, end time.Time) ([]ReportRow, error) {
	query := `
		SELECT c.title AS course_title, t.type,
		       COUNT(t.id) AS count, SUM(t.value) AS total
		FROM transactions t
		JOIN courses c ON c.id = t.course_id
		WHERE t.type = $1 AND t.created_at BETWEEN $2 AND $3
		GROUP BY c.id, c.title, t.type
		ORDER BY c.title`

	rows := []ReportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, TypePayment, start, end); err != nil {
		return nil, err
	}

	return rows, nil
}

// mapTxError translates Postgres serialization failures and deadlocks into
// the retryable ErrConflict.
func mapTxError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01":
			return ErrConflict
		}
	}
	return err
}
