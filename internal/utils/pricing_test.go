package utils

import (
	"math"
	"testing"
	"time"

	"boardcamp-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOriginalPrice(t *testing.T) {
	t.Run("Price times days", func(t *testing.T) {
		price, err := CalculateOriginalPrice(1000, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3000), price)
	})

	t.Run("Non-positive days", func(t *testing.T) {
		_, err := CalculateOriginalPrice(1000, 0)
		assert.Error(t, err)
		_, err = CalculateOriginalPrice(1000, -2)
		assert.Error(t, err)
	})

	t.Run("Non-positive price", func(t *testing.T) {
		_, err := CalculateOriginalPrice(0, 2)
		assert.Error(t, err)
	})

	t.Run("Overflow", func(t *testing.T) {
		_, err := CalculateOriginalPrice(math.MaxInt64/2, 3)
		assert.Error(t, err)
	})
}

func TestExpectedReturnDate(t *testing.T) {
	tests := []struct {
		name     string
		rentDate time.Time
		days     int32
		expected domain.Date
	}{
		{"Same month", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), 2, domain.Date{Year: 2024, Month: 1, Day: 12}},
		{"Late evening", time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC), 1, domain.Date{Year: 2024, Month: 1, Day: 11}},
		{"Month boundary", time.Date(2024, 1, 30, 12, 0, 0, 0, time.UTC), 3, domain.Date{Year: 2024, Month: 2, Day: 2}},
		{"Leap day", time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC), 1, domain.Date{Year: 2024, Month: 2, Day: 29}},
		{"Year boundary", time.Date(2023, 12, 31, 8, 0, 0, 0, time.UTC), 1, domain.Date{Year: 2024, Month: 1, Day: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpectedReturnDate(tt.rentDate, tt.days, time.UTC))
		})
	}
}

func TestExpectedReturnDate_UsesLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	// 01:00 UTC on the 11th is still the 10th in UTC-3.
	rentDate := time.Date(2024, 1, 11, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, domain.Date{Year: 2024, Month: 1, Day: 12}, ExpectedReturnDate(rentDate, 2, saoPaulo))
	assert.Equal(t, domain.Date{Year: 2024, Month: 1, Day: 13}, ExpectedReturnDate(rentDate, 2, time.UTC))
}

func TestCalculateDelayFee(t *testing.T) {
	tests := []struct {
		price    int64
		delay    int32
		expected int64
	}{
		{1000, 0, 0},
		{1000, -1, 0},
		{1000, -30, 0},
		{1000, 1, 1000},
		{1000, 3, 3000},
		{1500, 10, 15000},
		{math.MaxInt64, 2, math.MaxInt64},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CalculateDelayFee(tt.price, tt.delay))
	}
}

func TestCalculateSettlement(t *testing.T) {
	day0 := time.Date(2024, 3, 1, 18, 45, 0, 0, time.UTC)

	t.Run("Returned late", func(t *testing.T) {
		// Rented on day 0 for 2 days, returned on day 5.
		returned := domain.DateOf(day0).AddDays(5)
		s := CalculateSettlement(day0, 2, 1000, returned, time.UTC)
		assert.Equal(t, domain.Date{Year: 2024, Month: 3, Day: 3}, s.ExpectedReturnDate)
		assert.Equal(t, int32(3), s.DelayDays)
		assert.Equal(t, int64(3000), s.DelayFee)
	})

	t.Run("Returned early", func(t *testing.T) {
		returned := domain.DateOf(day0).AddDays(1)
		s := CalculateSettlement(day0, 2, 1000, returned, time.UTC)
		assert.Equal(t, int32(-1), s.DelayDays)
		assert.Equal(t, int64(0), s.DelayFee)
	})

	t.Run("Returned on the expected day", func(t *testing.T) {
		returned := domain.DateOf(day0).AddDays(2)
		s := CalculateSettlement(day0, 2, 1000, returned, time.UTC)
		assert.Equal(t, int32(0), s.DelayDays)
		assert.Equal(t, int64(0), s.DelayFee)
	})

	t.Run("Fee grows linearly with lateness", func(t *testing.T) {
		for d := 1; d <= 40; d++ {
			returned := domain.DateOf(day0).AddDays(2 + d)
			s := CalculateSettlement(day0, 2, 700, returned, time.UTC)
			assert.Equal(t, int64(700*d), s.DelayFee, "delay of %d days", d)
		}
	})
}
