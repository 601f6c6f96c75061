package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studybilling/internal/billing"
	"studybilling/internal/logger"
)

// Sender is the slice of the email service the jobs need.
type Sender interface {
	Send(ctx context.Context, to, subject, body, kind string) error
}

// Notifier emails users whose rented courses expire within the window,
// one email per user.
type Notifier struct {
	billing billing.Service
	sender  Sender
	window  time.Duration
}

func NewNotifier(billingService billing.Service, sender Sender) *Notifier {
	return &Notifier{
		billing: billingService,
		sender:  sender,
		window:  24 * time.Hour,
	}
}

func (n *Notifier) Run(ctx context.Context) (int, error) {
	rentals, err := n.billing.EndingSoon(ctx, n.window)
	if err != nil {
		return 0, err
	}

	// Группируем истекающие аренды по пользователю
	order := []string{}
	byUser := map[string][]billing.EndingRental{}
	for _, rental := range rentals {
		if _, seen := byUser[rental.UserEmail]; !seen {
			order = append(order, rental.UserEmail)
		}
		byUser[rental.UserEmail] = append(byUser[rental.UserEmail], rental)
	}

	sent := 0
	for _, email := range order {
		body := composeEndingNotification(byUser[email])
		err := n.sender.Send(ctx, email, "Notification About Courses Ending Soon", body, "ending_notification")
		if err != nil {
			logger.Errorf("Failed to queue ending notification for %s: %v", email, err)
			continue
		}
		sent++
	}

	return sent, nil
}

func composeEndingNotification(rentals []billing.EndingRental) string {
	var b strings.Builder
	b.WriteString("The following courses you rented are ending soon:\n\n")
	for _, rental := range rentals {
		fmt.Fprintf(&b, "- %s (expires at %s)\n",
			rental.CourseTitle,
			rental.ExpiresAt.Format("02.01.2006 15:04"),
		)
	}
	return b.String()
}
