package http

import (
	"net/http"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/service"
)

type CollectionHandler struct {
	collectionSvc service.CollectionService
}

func NewCollectionHandler(collectionSvc service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionSvc: collectionSvc}
}

type collectionForm struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	SharingType domain.SharingType `json:"sharing_type"`
}

func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form collectionForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, err)
		return
	}
	col, err := h.collectionSvc.CreateCollection(r.Context(), identityFrom(r), form.Title, form.Description, form.SharingType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, col)
}

type collectionDetailResponse struct {
	Collection *domain.Collection `json:"collection"`
	Items      []domain.Equipment `json:"items,omitempty"`
	// Locked is set when the collection is listed but its contents are not
	// accessible to the caller.
	Locked bool `json:"locked"`
}

func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	identity := identityFrom(r)
	col, items, err := h.collectionSvc.GetCollection(r.Context(), identity, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collectionDetailResponse{
		Collection: col,
		Items:      items,
		Locked:     !col.CanViewContents(identity),
	})
}

func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var form collectionForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, err)
		return
	}
	col, err := h.collectionSvc.UpdateCollection(r.Context(), identityFrom(r), id, form.Title, form.Description, form.SharingType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, col)
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.collectionSvc.DeleteCollection(r.Context(), identityFrom(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	cols, err := h.collectionSvc.ListCollections(r.Context(), identityFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}

func (h *CollectionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	equipmentID, err := pathID(r, "equipmentID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.collectionSvc.AddItem(r.Context(), identityFrom(r), id, equipmentID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *CollectionHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	equipmentID, err := pathID(r, "equipmentID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.collectionSvc.RemoveItem(r.Context(), identityFrom(r), id, equipmentID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *CollectionHandler) RequestAccess(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	req, err := h.collectionSvc.RequestAccess(r.Context(), identityFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

type respondAccessRequest struct {
	Note string `json:"note"`
}

func (h *CollectionHandler) ApproveAccess(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "requestID")
	if err != nil {
		writeError(w, err)
		return
	}
	var body respondAccessRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	req, err := h.collectionSvc.ApproveAccess(r.Context(), identityFrom(r), requestID, body.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *CollectionHandler) DenyAccess(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "requestID")
	if err != nil {
		writeError(w, err)
		return
	}
	var body respondAccessRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	req, err := h.collectionSvc.DenyAccess(r.Context(), identityFrom(r), requestID, body.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *CollectionHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.collectionSvc.ListPendingRequests(r.Context(), identityFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *CollectionHandler) GrantUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.collectionSvc.GrantUser(r.Context(), identityFrom(r), id, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *CollectionHandler) RevokeUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.collectionSvc.RevokeUser(r.Context(), identityFrom(r), id, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
