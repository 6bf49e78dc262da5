// Package events publishes rental lifecycle notifications to a message broker.
package events

import (
	"context"
	"time"

	"boardcamp-backend/internal/domain"
)

const (
	RentalCreated  = "rental.created"
	RentalReturned = "rental.returned"
	RentalOverdue  = "rental.overdue"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

type RentalCreatedEvent struct {
	RentalID      int32     `json:"rentalId"`
	CustomerID    int32     `json:"customerId"`
	GameID        int32     `json:"gameId"`
	DaysRented    int32     `json:"daysRented"`
	OriginalPrice int64     `json:"originalPrice"`
	RentDate      time.Time `json:"rentDate"`
}

type RentalReturnedEvent struct {
	RentalID   int32       `json:"rentalId"`
	GameID     int32       `json:"gameId"`
	ReturnDate domain.Date `json:"returnDate"`
	DelayFee   int64       `json:"delayFee"`
}

type RentalOverdueEvent struct {
	RentalID           int32       `json:"rentalId"`
	CustomerID         int32       `json:"customerId"`
	GameID             int32       `json:"gameId"`
	ExpectedReturnDate domain.Date `json:"expectedReturnDate"`
	DelayDays          int32       `json:"delayDays"`
	AccruedFee         int64       `json:"accruedFee"`
}

func NewRentalCreated(rt *domain.Rental) RentalCreatedEvent {
	return RentalCreatedEvent{
		RentalID:      rt.ID,
		CustomerID:    rt.CustomerID,
		GameID:        rt.GameID,
		DaysRented:    rt.DaysRented,
		OriginalPrice: rt.OriginalPrice,
		RentDate:      rt.RentDate,
	}
}

func NewRentalOverdue(o domain.OverdueRental) RentalOverdueEvent {
	return RentalOverdueEvent{
		RentalID:           o.Rental.ID,
		CustomerID:         o.Rental.CustomerID,
		GameID:             o.Rental.GameID,
		ExpectedReturnDate: o.ExpectedReturnDate,
		DelayDays:          o.DelayDays,
		AccruedFee:         o.AccruedFee,
	}
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, payload any) error { return nil }
func (NoopPublisher) Close() error                                                      { return nil }
