package main

import (
	"context"
	"flag"
	"time"

	"studybilling/internal/billing"
	"studybilling/internal/config"
	"studybilling/internal/course"
	"studybilling/internal/db"
	"studybilling/internal/email"
	"studybilling/internal/jobs"
	"studybilling/internal/logger"
	"studybilling/internal/user"
)

// Одноразовые задания для cron: уведомления об истекающих арендах и
// ежемесячный отчёт по платежам.
func main() {
	job := flag.String("job", "", "job to run: notify | report")
	flag.Parse()

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

	emailService := email.New(
		cfg.EmailFrom,
		cfg.EmailFromName,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.RedisAddr,
	)
	defer emailService.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go emailService.Start(ctx)

	billingService := billing.NewService(
		billing.NewRepository(database),
		user.NewRepository(database),
		course.NewRepository(database),
	)

	switch *job {
	case "notify":
		notifier := jobs.NewNotifier(billingService, emailService)
		sent, err := notifier.Run(ctx)
		if err != nil {
			logger.Fatalf("Notification job failed: %v", err)
		}
		logger.Infof("Sent %d notifications", sent)
	case "report":
		reporter := jobs.NewReporter(billingService, emailService, cfg.ReportEmail)
		if err := reporter.Run(ctx); err != nil {
			logger.Fatalf("Report job failed: %v", err)
		}
		logger.Infof("Report sent to %s", cfg.ReportEmail)
	default:
		logger.Fatal("Unknown job, expected -job=notify or -job=report")
	}

	// Даём воркеру время доставить поставленные в очередь письма
	deadline := time.After(30 * time.Second)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-deadline:
			logger.Warn("Email queue not drained before deadline")
			return
		case <-ticker.C:
			if emailService.QueueLength(ctx) == 0 {
				return
			}
		}
	}
}
