package http

import (
	"net/http"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/service"
)

type CartHandler struct {
	cartSvc service.CartService
}

func NewCartHandler(cartSvc service.CartService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

type cartResponse struct {
	Items   []domain.CartItem   `json:"items"`
	Summary *domain.CartSummary `json:"summary"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	items, summary, err := h.cartSvc.GetCart(r.Context(), identityFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: items, Summary: summary})
}

type addToCartRequest struct {
	EquipmentID int32                 `json:"equipment_id"`
	StartDate   string                `json:"start_date"` // YYYY-MM-DD
	EndDate     string                `json:"end_date"`
	Duration    domain.RentalDuration `json:"duration"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "start_date", Message: "Start date must be YYYY-MM-DD."})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "end_date", Message: "End date must be YYYY-MM-DD."})
		return
	}
	item, err := h.cartSvc.AddToCart(r.Context(), identityFrom(r), req.EquipmentID, start, end, req.Duration)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type quickAddRequest struct {
	EquipmentID int32 `json:"equipment_id"`
}

func (h *CartHandler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	var req quickAddRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.cartSvc.QuickAdd(r.Context(), identityFrom(r), req.EquipmentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.cartSvc.RemoveFromCart(r.Context(), identityFrom(r), itemID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartSvc.ClearCart(r.Context(), identityFrom(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type checkoutResponse struct {
	Rentals []domain.Rental `json:"rentals"`
	Skipped int32           `json:"skipped"`
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	rentals, skipped, err := h.cartSvc.Checkout(r.Context(), identityFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, checkoutResponse{Rentals: rentals, Skipped: skipped})
}
