package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/service"
	"skirentals-backend/internal/utils"
)

type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc}
}

// pathID parses a {name} route variable as an int32 id.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Field: name, Message: "Invalid identifier."}
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}

type equipmentForm struct {
	Type              domain.EquipmentType `json:"equipment_type"`
	Subtype           domain.SkiType       `json:"equipment_subtype"`
	Brand             string               `json:"brand"`
	Model             string               `json:"model"`
	Size              string               `json:"size"`
	Location          string               `json:"location"`
	Condition         domain.Condition     `json:"condition"`
	Notes             string               `json:"notes"`
	DailyRateCents    int64                `json:"daily_rate_cents"`
	WeeklyRateCents   *int64               `json:"weekly_rate_cents"`
	SeasonalRateCents *int64               `json:"seasonal_rate_cents"`
}

// validate runs the form-level checks. The service re-validates on its own;
// the duplication is intentional so programmatic writes that bypass the
// form hit the same size rules.
func (f *equipmentForm) validate() error {
	if !f.Type.IsValid() {
		return &domain.ValidationError{Field: "equipment_type", Message: "Unknown equipment type."}
	}
	return utils.ValidateSize(f.Type, f.Size)
}

func (f *equipmentForm) toDomain() *domain.Equipment {
	return &domain.Equipment{
		Type:              f.Type,
		Subtype:           f.Subtype,
		Brand:             f.Brand,
		Model:             f.Model,
		Size:              f.Size,
		Location:          f.Location,
		Condition:         f.Condition,
		Notes:             f.Notes,
		DailyRateCents:    f.DailyRateCents,
		WeeklyRateCents:   f.WeeklyRateCents,
		SeasonalRateCents: f.SeasonalRateCents,
	}
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form equipmentForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, err)
		return
	}
	if err := form.validate(); err != nil {
		writeError(w, err)
		return
	}
	eq, err := h.equipmentSvc.AddEquipment(r.Context(), identityFrom(r), form.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	eq, err := h.equipmentSvc.GetEquipment(r.Context(), identityFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var form equipmentForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, err)
		return
	}
	if err := form.validate(); err != nil {
		writeError(w, err)
		return
	}
	eq := form.toDomain()
	eq.ID = id
	updated, err := h.equipmentSvc.UpdateEquipment(r.Context(), identityFrom(r), eq)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	hard := r.URL.Query().Get("hard") == "true"
	if err := h.equipmentSvc.DeleteEquipment(r.Context(), identityFrom(r), id, hard); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type equipmentListResponse struct {
	Items []domain.Equipment `json:"items"`
	Total int32              `json:"total"`
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	items, total, err := h.equipmentSvc.ListEquipment(r.Context(), identityFrom(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, equipmentListResponse{Items: items, Total: total})
}

func (h *EquipmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := queryInt32(r, "limit", 50)
	items, err := h.equipmentSvc.SearchEquipment(r.Context(), identityFrom(r), query, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, equipmentListResponse{Items: items, Total: int32(len(items))})
}

type addImageRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
	Order   int32  `json:"order"`
}

func (h *EquipmentHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req addImageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.URL == "" {
		writeError(w, &domain.ValidationError{Field: "url", Message: "Image URL is required."})
		return
	}
	img := &domain.EquipmentImage{EquipmentID: id, URL: req.URL, Caption: req.Caption, Order: req.Order}
	created, err := h.equipmentSvc.AddImage(r.Context(), identityFrom(r), img)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EquipmentHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	images, err := h.equipmentSvc.ListImages(r.Context(), identityFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

func (h *EquipmentHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	imageID, err := pathID(r, "imageID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.equipmentSvc.DeleteImage(r.Context(), identityFrom(r), id, imageID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
