package main

import (
	"context"
	"time"

	"studybilling/internal/auth"
	"studybilling/internal/billing"
	"studybilling/internal/config"
	"studybilling/internal/course"
	"studybilling/internal/db"
	"studybilling/internal/logger"
	"studybilling/internal/user"
)

// Загружает демо-данные: пользователей, курсы и историю транзакций.
// Транзакции проводятся через настоящие движки с обратной датой.
func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	userRepo := user.NewRepository(database)
	courseRepo := course.NewRepository(database)
	billingService := billing.NewService(billing.NewRepository(database), userRepo, courseRepo)

	regularUser := mustCreateUser(ctx, userRepo, "user@mail.ru", "password", user.RoleUser)
	adminUser := mustCreateUser(ctx, userRepo, "admin@mail.ru", "password", user.RoleAdmin)

	coursesData := []course.CourseRequest{
		{Title: "Python Junior", Code: "python-junior", Type: "rent", Price: 299.99},
		{Title: "Introduction to Neural Networks", Code: "introduction-to-neural-networks", Type: "rent", Price: 500.00},
		{Title: "Industrial WEB-development", Code: "industrial-web-development", Type: "buy", Price: 850.00},
		{Title: "Basics of Computer Vision", Code: "basics-of-computer-vision", Type: "buy", Price: 350.99},
		{Title: "ROS2 Course", Code: "ros2-course", Type: "free", Price: 0.00},
	}

	courseService := course.NewService(courseRepo)
	for _, data := range coursesData {
		if _, err := courseService.Create(ctx, data); err != nil {
			logger.Fatalf("Failed to create course %s: %v", data.Code, err)
		}
	}

	now := time.Now()

	mustDeposit(ctx, billingService, adminUser.ID, 99999.99, nil)
	mustDeposit(ctx, billingService, regularUser.ID, 1250.99, backdate(now, -14*24*time.Hour))

	mustPay(ctx, billingService, regularUser.ID, "python-junior", backdate(now, -6*24*time.Hour))
	mustPay(ctx, billingService, regularUser.ID, "introduction-to-neural-networks", backdate(now, -8*24*time.Hour))
	mustPay(ctx, billingService, regularUser.ID, "basics-of-computer-vision", backdate(now, -24*time.Hour))
	mustPay(ctx, billingService, regularUser.ID, "ros2-course", backdate(now, -24*time.Hour))

	logger.Info("Fixtures loaded")
}

func backdate(now time.Time, offset time.Duration) *time.Time {
	t := now.Add(offset)
	return &t
}

func mustCreateUser(ctx context.Context, repo user.Repository, email, password, role string) *user.User {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		logger.Fatalf("Failed to hash password: %v", err)
	}

	u, err := repo.Create(ctx, email, passwordHash, role)
	if err != nil {
		logger.Fatalf("Failed to create user %s: %v", email, err)
	}
	return u
}

func mustDeposit(ctx context.Context, svc billing.Service, userID int, amount float64, occurredAt *time.Time) {
	if _, err := svc.Deposit(ctx, userID, amount, occurredAt); err != nil {
		logger.Fatalf("Failed to deposit %.2f to user %d: %v", amount, userID, err)
	}
}

func mustPay(ctx context.Context, svc billing.Service, userID int, courseCode string, occurredAt *time.Time) {
	if _, err := svc.Pay(ctx, userID, courseCode, occurredAt); err != nil {
		logger.Fatalf("Failed to pay for %s as user %d: %v", courseCode, userID, err)
	}
}
