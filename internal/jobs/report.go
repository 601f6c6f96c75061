package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studybilling/internal/billing"
)

// Reporter mails the aggregated payment report for the previous month.
type Reporter struct {
	billing billing.Service
	sender  Sender
	to      string
}

func NewReporter(billingService billing.Service, sender Sender, reportEmail string) *Reporter {
	return &Reporter{
		billing: billingService,
		sender:  sender,
		to:      reportEmail,
	}
}

func (r *Reporter) Run(ctx context.Context) error {
	start, end := previousMonth(time.Now())

	rows, err := r.billing.MonthlyReport(ctx, start, end)
	if err != nil {
		return err
	}

	subject := "Payment Report for " + start.Format("01.2006")
	body := composeReport(start, end, rows)

	return r.sender.Send(ctx, r.to, subject, body, "monthly_report")
}

// previousMonth returns the [start, end) window of the calendar month
// before the one containing now.
func previousMonth(now time.Time) (time.Time, time.Time) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfThisMonth.AddDate(0, -1, 0), firstOfThisMonth
}

func composeReport(start, end time.Time, rows []billing.ReportRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Payments from %s to %s:\n\n",
		start.Format("02.01.2006"),
		end.Add(-time.Second).Format("02.01.2006"),
	)

	if len(rows) == 0 {
		b.WriteString("No payments in this period.\n")
		return b.String()
	}

	var total float64
	for _, row := range rows {
		fmt.Fprintf(&b, "%s | %s | %d | %.2f\n", row.CourseTitle, row.Type, row.Count, row.Total)
		total += row.Total
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", total)

	return b.String()
}
