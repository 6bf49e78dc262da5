package utils

import (
	"fmt"
	"math"
	"time"

	"boardcamp-backend/internal/domain"
)

// SettlementBreakdown provides the detailed computation behind a delay fee
type SettlementBreakdown struct {
	RentDate           domain.Date
	ExpectedReturnDate domain.Date
	ReturnDate         domain.Date
	DelayDays          int32
	DelayFee           int64
}

// CalculateOriginalPrice returns pricePerDay × daysRented, the amount fixed at
// admission time.
func CalculateOriginalPrice(pricePerDay int64, daysRented int32) (int64, error) {
	if pricePerDay <= 0 {
		return 0, fmt.Errorf("price per day must be positive")
	}
	if daysRented <= 0 {
		return 0, fmt.Errorf("days rented must be positive")
	}
	if pricePerDay > math.MaxInt64/int64(daysRented) {
		return 0, fmt.Errorf("rental price overflows")
	}
	return pricePerDay * int64(daysRented), nil
}

// ExpectedReturnDate is the calendar date of rentDate in loc plus the reserved
// days. Time of day plays no part.
func ExpectedReturnDate(rentDate time.Time, daysRented int32, loc *time.Location) domain.Date {
	return domain.DateIn(rentDate, loc).AddDays(int(daysRented))
}

// DelayDays counts whole calendar days from expected to returned. Zero or
// negative means on time.
func DelayDays(expected, returned domain.Date) int32 {
	return int32(returned.DaysSince(expected))
}

// CalculateDelayFee returns max(0, pricePerDay × delayDays).
func CalculateDelayFee(pricePerDay int64, delayDays int32) int64 {
	if delayDays <= 0 || pricePerDay <= 0 {
		return 0
	}
	if pricePerDay > math.MaxInt64/int64(delayDays) {
		return math.MaxInt64
	}
	return pricePerDay * int64(delayDays)
}

// CalculateSettlement computes the full settlement of a rental returned on
// returnDate.
func CalculateSettlement(rentDate time.Time, daysRented int32, pricePerDay int64, returnDate domain.Date, loc *time.Location) SettlementBreakdown {
	expected := ExpectedReturnDate(rentDate, daysRented, loc)
	delay := DelayDays(expected, returnDate)
	return SettlementBreakdown{
		RentDate:           domain.DateIn(rentDate, loc),
		ExpectedReturnDate: expected,
		ReturnDate:         returnDate,
		DelayDays:          delay,
		DelayFee:           CalculateDelayFee(pricePerDay, delay),
	}
}
