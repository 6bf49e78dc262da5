package http

import (
	"net/http"

	"boardcamp-backend/internal/service"
)

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var in service.CreateCategoryInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.svc.Categories.CreateCategory(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *handler) listGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.Games.ListGames(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *handler) createGame(w http.ResponseWriter, r *http.Request) {
	var in service.CreateGameInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.svc.Games.CreateGame(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.Customers.ListCustomers(r.Context(), r.URL.Query().Get("cpf"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := h.svc.Customers.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var in service.CreateCustomerInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.svc.Customers.CreateCustomer(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
