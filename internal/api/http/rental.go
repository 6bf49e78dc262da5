package http

import (
	"net/http"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/logger"
	"boardcamp-backend/internal/service"
)

// createRentalRequest uses pointers so a missing field is told apart from zero.
type createRentalRequest struct {
	CustomerID *int32 `json:"customerId"`
	GameID     *int32 `json:"gameId"`
	DaysRented *int32 `json:"daysRented"`
}

func (req createRentalRequest) toInput() (service.CreateRentalInput, error) {
	switch {
	case req.CustomerID == nil:
		return service.CreateRentalInput{}, errMissing("customerId")
	case req.GameID == nil:
		return service.CreateRentalInput{}, errMissing("gameId")
	case req.DaysRented == nil:
		return service.CreateRentalInput{}, errMissing("daysRented")
	}
	return service.CreateRentalInput{
		CustomerID: *req.CustomerID,
		GameID:     *req.GameID,
		DaysRented: *req.DaysRented,
	}, nil
}

func (h *handler) listRentals(w http.ResponseWriter, r *http.Request) {
	customerID, err := queryID(r, "customerId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	gameID, err := queryID(r, "gameId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rentals, err := h.svc.Rentals.ListRentals(r.Context(), domain.RentalFilter{CustomerID: customerID, GameID: gameID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *handler) getRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.svc.Rentals.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *handler) createRental(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.svc.Rentals.CreateRental(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("Rental admitted", "rentalID", rental.ID, "gameID", rental.GameID, "staff", StaffFromContext(r.Context()))
	w.WriteHeader(http.StatusCreated)
}

func (h *handler) returnRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.svc.Rentals.ReturnRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("Rental returned", "rentalID", rental.ID, "delayFee", *rental.DelayFee, "staff", StaffFromContext(r.Context()))
	w.WriteHeader(http.StatusOK)
}
