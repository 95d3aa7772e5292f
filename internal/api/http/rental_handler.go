package http

import (
	"net/http"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type requestRentalRequest struct {
	EquipmentID int32                 `json:"equipment_id"`
	Duration    domain.RentalDuration `json:"duration"`
	StartDate   string                `json:"start_date"`
	DueDate     string                `json:"due_date"`
	Notes       string                `json:"notes"`
}

func (h *RentalHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req requestRentalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "start_date", Message: "Start date must be YYYY-MM-DD."})
		return
	}
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "due_date", Message: "Due date must be YYYY-MM-DD."})
		return
	}
	rental, err := h.rentalSvc.RequestRental(r.Context(), identityFrom(r), req.EquipmentID, req.Duration, start, due, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentalSvc.ApproveRental(r.Context(), identityFrom(r), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type denyRentalRequest struct {
	Reason string `json:"reason"`
}

func (h *RentalHandler) Deny(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req denyRentalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentalSvc.DenyRental(r.Context(), identityFrom(r), rentalID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentalSvc.CancelRental(r.Context(), identityFrom(r), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type completeRentalRequest struct {
	ReturnCondition domain.Condition `json:"return_condition"`
	ReturnNotes     string           `json:"return_notes"`
}

func (h *RentalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req completeRentalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentalSvc.CompleteRental(r.Context(), identityFrom(r), rentalID, req.ReturnCondition, req.ReturnNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), identityFrom(r), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type rentalListResponse struct {
	Rentals []domain.Rental `json:"rentals"`
	Total   int32           `json:"total"`
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	rentals, total, err := h.rentalSvc.ListRentals(r.Context(), identityFrom(r), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalListResponse{Rentals: rentals, Total: total})
}

func (h *RentalHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.rentalSvc.RentalCounts(r.Context(), identityFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
