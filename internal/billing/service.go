package billing

import (
	"context"
	"errors"
	"time"

	"studybilling/internal/course"
	"studybilling/internal/metrics"
	"studybilling/internal/user"
)

// RentalPeriod is how long a rent-type course stays accessible after payment.
// A policy of the payment engine, not of the course record.
const RentalPeriod = 7 * 24 * time.Hour

var ErrNegativeDeposit = errors.New("deposit amount cannot be negative")

type Service interface {
	// Pay debits the user for the course and records a payment transaction.
	// occurredAt backdates the transaction when non-nil.
	Pay(ctx context.Context, userID int, courseCode string, occurredAt *time.Time) (*PaymentResult, error)
	// Deposit credits the user's balance and records a deposit transaction,
	// returning the updated user.
	Deposit(ctx context.Context, userID int, amount float64, occurredAt *time.Time) (*user.User, error)
	Transactions(ctx context.Context, username string, f Filter) ([]TransactionWithCourse, error)
	EndingSoon(ctx context.Context, within time.Duration) ([]EndingRental, error)
	MonthlyReport(ctx context.Context, start, end time.Time) ([]ReportRow, error)
}

type service struct {
	repo       Repository
	userRepo   user.Repository
	courseRepo course.Repository
}

func NewService(repo Repository, userRepo user.Repository, courseRepo course.Repository) Service {
	return &service{
		repo:       repo,
		userRepo:   userRepo,
		courseRepo: courseRepo,
	}
}

func (s *service) Pay(ctx context.Context, userID int, courseCode string, occurredAt *time.Time) (*PaymentResult, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	crs, err := s.courseRepo.FindByCode(ctx, courseCode)
	if err != nil {
		return nil, err
	}

	when := time.Now()
	if occurredAt != nil {
		when = *occurredAt
	}

	// Бесплатный курс ничего не списывает, баланс не важен
	var price, value float64
	if crs.Type.Priced() {
		price = crs.Price
		value = crs.Price
		if u.Balance < price {
			metrics.RecordPaymentRejected()
			return nil, ErrInsufficientFunds
		}
	}

	var expiresAt *time.Time
	if crs.Type.Rental() {
		t := when.Add(RentalPeriod)
		expiresAt = &t
	}

	tr, err := s.repo.CreatePayment(ctx, u.ID, crs.ID, price, value, when, expiresAt)
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			metrics.RecordPaymentRejected()
		}
		return nil, err
	}

	metrics.RecordPayment(string(crs.Type))

	return &PaymentResult{
		Transaction: tr,
		CourseType:  crs.Type,
	}, nil
}

func (s *service) Deposit(ctx context.Context, userID int, amount float64, occurredAt *time.Time) (*user.User, error) {
	if amount < 0 {
		return nil, ErrNegativeDeposit
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	when := time.Now()
	if occurredAt != nil {
		when = *occurredAt
	}

	u, err := s.repo.CreateDeposit(ctx, userID, amount, when)
	if err != nil {
		return nil, err
	}

	metrics.RecordDeposit()

	return u, nil
}

func (s *service) Transactions(ctx context.Context, username string, f Filter) ([]TransactionWithCourse, error) {
	return s.repo.Filtered(ctx, username, f)
}

func (s *service) EndingSoon(ctx context.Context, within time.Duration) ([]EndingRental, error) {
	return s.repo.EndingSoon(ctx, within)
}

func (s *service) MonthlyReport(ctx context.Context, start, end time.Time) ([]ReportRow, error) {
	return s.repo.MonthlyReport(ctx, start, end)
}
