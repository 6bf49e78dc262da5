package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive   RentalStatus = "ACTIVE"
	RentalStatusReturned RentalStatus = "RETURNED"
)

type Rental struct {
	ID            int32           `json:"id"`
	CustomerID    int32           `json:"customerId"`
	GameID        int32           `json:"gameId"`
	RentDate      time.Time       `json:"rentDate"`
	DaysRented    int32           `json:"daysRented"`
	ReturnDate    *Date           `json:"returnDate"`
	OriginalPrice int64           `json:"originalPrice"`
	DelayFee      *int64          `json:"delayFee"`
	Customer      *RentalCustomer `json:"customer,omitempty"` // Populated on listing
	Game          *RentalGame     `json:"game,omitempty"`     // Populated on listing
}

// RentalCustomer and RentalGame are the summaries embedded in rental listings.
type RentalCustomer struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type RentalGame struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	CategoryID   int32  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

func (r *Rental) Status() RentalStatus {
	if r.ReturnDate != nil {
		return RentalStatusReturned
	}
	return RentalStatusActive
}

func (r *Rental) IsActive() bool {
	return r.ReturnDate == nil
}

// RentalFilter narrows a rental listing. Zero values match everything.
type RentalFilter struct {
	CustomerID int32
	GameID     int32
}

// OverdueRental is an active rental past its expected return date, with the
// fee it would be charged if returned today.
type OverdueRental struct {
	Rental             Rental `json:"rental"`
	ExpectedReturnDate Date   `json:"expectedReturnDate"`
	DelayDays          int32  `json:"delayDays"`
	AccruedFee         int64  `json:"accruedFee"`
}
