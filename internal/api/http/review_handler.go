package http

import (
	"net/http"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/service"
)

type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

type submitReviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req submitReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	review, err := h.reviewSvc.SubmitReview(r.Context(), identityFrom(r), equipmentID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

type reviewListResponse struct {
	Reviews      []domain.Review            `json:"reviews"`
	Distribution *domain.RatingDistribution `json:"distribution"`
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	reviews, dist, err := h.reviewSvc.ListReviews(r.Context(), identityFrom(r), equipmentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewListResponse{Reviews: reviews, Distribution: dist})
}
