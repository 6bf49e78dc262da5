package jobs

import (
	"context"
	"time"

	"boardcamp-backend/internal/events"
	"boardcamp-backend/internal/logger"
)

// ReportOverdueRentals logs every active rental past its expected return
// date and publishes one rental.overdue event per rental. Fees are reported,
// never charged.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := jr.reportOverdueRentals(ctx); err != nil {
			logger.Error("Failed to report overdue rentals", "error", err)
		}
	})
}

func (jr *JobRunner) reportOverdueRentals(ctx context.Context) (int, error) {
	overdue, err := jr.rentals.ListOverdueRentals(ctx)
	if err != nil {
		return 0, err
	}

	var totalFee int64
	published := 0
	for _, o := range overdue {
		totalFee += o.AccruedFee
		logger.Debug("Rental is overdue",
			"rental_id", o.Rental.ID,
			"customer_id", o.Rental.CustomerID,
			"game_id", o.Rental.GameID,
			"expected_return_date", o.ExpectedReturnDate.String(),
			"delay_days", o.DelayDays,
			"accrued_fee", o.AccruedFee)

		if err := jr.publisher.Publish(ctx, events.RentalOverdue, events.NewRentalOverdue(o)); err != nil {
			logger.Warn("Failed to publish overdue event", "rental_id", o.Rental.ID, "error", err)
			continue
		}
		published++
	}

	logger.Info("Overdue rentals reported", "count", len(overdue), "published", published, "accrued_fee_total", totalFee)
	return len(overdue), nil
}
