package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"boardcamp-backend/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)
	evt := RentalReturnedEvent{RentalID: 7, GameID: 2, ReturnDate: domain.Date{Year: 2024, Month: 1, Day: 6}, DelayFee: 3000}

	msg, err := newPublishing(evt, now)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.NotEmpty(t, msg.MessageId)
	assert.Equal(t, now, msg.Timestamp)
	assert.JSONEq(t, `{"rentalId":7,"gameId":2,"returnDate":"2024-01-06","delayFee":3000}`, string(msg.Body))
}

func TestNewPublishing_UnmarshalablePayload(t *testing.T) {
	_, err := newPublishing(map[string]any{"bad": make(chan int)}, time.Now())
	assert.Error(t, err)
}

func TestNewRentalOverdue(t *testing.T) {
	o := domain.OverdueRental{
		Rental:             domain.Rental{ID: 3, CustomerID: 1, GameID: 2},
		ExpectedReturnDate: domain.Date{Year: 2024, Month: 1, Day: 3},
		DelayDays:          2,
		AccruedFee:         3000,
	}
	b, err := json.Marshal(NewRentalOverdue(o))
	require.NoError(t, err)
	assert.JSONEq(t, `{"rentalId":3,"customerId":1,"gameId":2,"expectedReturnDate":"2024-01-03","delayDays":2,"accruedFee":3000}`, string(b))
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), RentalCreated, RentalCreatedEvent{}))
	assert.NoError(t, p.Close())
}

func TestRabbitPublisher_Live(t *testing.T) {
	url := os.Getenv("BOARDCAMP_TEST_RABBITMQ_URL")
	if url == "" {
		t.Skip("BOARDCAMP_TEST_RABBITMQ_URL not set")
	}
	p, err := NewRabbitPublisher(url, "boardcamp.events.test")
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, p.Publish(ctx, RentalCreated, RentalCreatedEvent{RentalID: 1}))
}
