package service

import (
	"context"

	"github.com/google/uuid"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
	"skirentals-backend/internal/utils"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo}
}

func (s *equipmentService) AddEquipment(ctx context.Context, actor domain.Identity, eq *domain.Equipment) (*domain.Equipment, error) {
	if !actor.IsLibrarian() {
		return nil, domain.ErrForbidden
	}
	if err := validateEquipment(eq); err != nil {
		return nil, err
	}
	eq.NormalizeSubtype()
	eq.EquipmentID = uuid.NewString()
	if eq.Condition == "" {
		eq.Condition = domain.ConditionGood
	}
	eq.IsAvailable = true
	eq.IsDeleted = false
	if err := s.equipmentRepo.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) GetEquipment(ctx context.Context, viewer domain.Identity, id int32) (*domain.Equipment, error) {
	visible, err := s.equipmentRepo.IsVisible(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.ErrNotFound
	}
	eq, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq.IsDeleted && !viewer.IsLibrarian() {
		return nil, domain.ErrNotFound
	}
	return eq, nil
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, actor domain.Identity, eq *domain.Equipment) (*domain.Equipment, error) {
	if !actor.IsLibrarian() {
		return nil, domain.ErrForbidden
	}
	existing, err := s.equipmentRepo.GetByID(ctx, eq.ID)
	if err != nil {
		return nil, err
	}
	if err := validateEquipment(eq); err != nil {
		return nil, err
	}
	eq.NormalizeSubtype()
	// Lifecycle and aggregate fields belong to the rental/review flows, not
	// the edit form; carry them over from the stored row.
	eq.EquipmentID = existing.EquipmentID
	eq.TotalRentals = existing.TotalRentals
	eq.AverageRating = existing.AverageRating
	eq.DateAdded = existing.DateAdded
	eq.IsAvailable = existing.IsAvailable
	eq.IsDeleted = existing.IsDeleted
	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, actor domain.Identity, id int32, hard bool) error {
	if !actor.IsLibrarian() {
		return domain.ErrForbidden
	}
	if _, err := s.equipmentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if hard {
		return s.equipmentRepo.HardDelete(ctx, id)
	}
	return s.equipmentRepo.SoftDelete(ctx, id)
}

func (s *equipmentService) ListEquipment(ctx context.Context, viewer domain.Identity, page, pageSize int32) ([]domain.Equipment, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.equipmentRepo.ListVisible(ctx, viewer, page, pageSize)
}

func (s *equipmentService) SearchEquipment(ctx context.Context, viewer domain.Identity, query string, limit int32) ([]domain.Equipment, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.equipmentRepo.SearchVisible(ctx, viewer, query, limit)
}

func (s *equipmentService) AddImage(ctx context.Context, actor domain.Identity, image *domain.EquipmentImage) (*domain.EquipmentImage, error) {
	if !actor.IsLibrarian() {
		return nil, domain.ErrForbidden
	}
	if _, err := s.equipmentRepo.GetByID(ctx, image.EquipmentID); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.AddImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *equipmentService) ListImages(ctx context.Context, viewer domain.Identity, equipmentID int32) ([]domain.EquipmentImage, error) {
	visible, err := s.equipmentRepo.IsVisible(ctx, viewer, equipmentID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.ErrNotFound
	}
	return s.equipmentRepo.GetImages(ctx, equipmentID)
}

func (s *equipmentService) DeleteImage(ctx context.Context, actor domain.Identity, equipmentID, imageID int32) error {
	if !actor.IsLibrarian() {
		return domain.ErrForbidden
	}
	images, err := s.equipmentRepo.GetImages(ctx, equipmentID)
	if err != nil {
		return err
	}
	for _, img := range images {
		if img.ID == imageID {
			return s.equipmentRepo.DeleteImage(ctx, imageID)
		}
	}
	return domain.ErrNotFound
}

// validateEquipment re-checks the fields the form layer already validated.
// Size rules in particular must hold no matter which surface the write came
// through.
func validateEquipment(eq *domain.Equipment) error {
	if eq.Brand == "" {
		return &domain.ValidationError{Field: "brand", Message: "Brand is required."}
	}
	if eq.Model == "" {
		return &domain.ValidationError{Field: "model", Message: "Model is required."}
	}
	if !eq.Type.IsValid() {
		return &domain.ValidationError{Field: "equipment_type", Message: "Unknown equipment type."}
	}
	if eq.Condition != "" && !eq.Condition.IsValid() {
		return &domain.ValidationError{Field: "condition", Message: "Unknown condition."}
	}
	if eq.DailyRateCents <= 0 {
		return &domain.ValidationError{Field: "daily_rate", Message: "Daily rate must be positive."}
	}
	if err := utils.ValidateSize(eq.Type, eq.Size); err != nil {
		return err
	}
	return nil
}
