package service

import (
	"context"
	"fmt"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
	"skirentals-backend/internal/utils"
)

type rentalService struct {
	rentalRepo    repository.RentalRepository
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
	noteRepo      repository.NotificationRepository
	emailSvc      EmailService
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) RentalService {
	return &rentalService{
		rentalRepo:    rentalRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		noteRepo:      noteRepo,
		emailSvc:      emailSvc,
	}
}

func (s *rentalService) RequestRental(ctx context.Context, actor domain.Identity, equipmentID int32, duration domain.RentalDuration, start, due time.Time, notes string) (*domain.Rental, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrForbidden
	}
	if !duration.IsValid() {
		return nil, &domain.ValidationError{Field: "duration", Message: "Unknown rental duration."}
	}
	if !due.After(start) {
		return nil, &domain.ValidationError{Field: "due_date", Message: "Due date must be after the start date."}
	}

	visible, err := s.equipmentRepo.IsVisible(ctx, actor, equipmentID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.ErrNotFound
	}
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if !eq.IsAvailable {
		return nil, &domain.ConflictError{Entity: "equipment", Message: "Equipment is not available for rental."}
	}

	rental := &domain.Rental{
		EquipmentID:         equipmentID,
		PatronID:            actor.UserID,
		Duration:            duration,
		Status:              domain.RentalStatusPending,
		PriceCents:          utils.PriceForDuration(eq, duration),
		CheckoutDate:        start,
		DueDate:             due,
		CheckedOutCondition: eq.Condition,
		CheckoutNotes:       notes,
	}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}
	rental.Equipment = eq

	s.notifyLibrarians(ctx, rental, eq)
	return rental, nil
}

// notifyLibrarians fans a new rental request out to every librarian.
func (s *rentalService) notifyLibrarians(ctx context.Context, rental *domain.Rental, eq *domain.Equipment) {
	patron, _ := s.userRepo.GetByID(ctx, rental.PatronID)
	if patron == nil {
		return
	}
	librarians, _ := s.userRepo.ListByRole(ctx, domain.RoleLibrarian)
	for i := range librarians {
		lib := &librarians[i]
		note := &domain.Notification{
			UserID:     lib.ID,
			Type:       domain.NotificationRentalRequest,
			Message:    fmt.Sprintf("%s requested to rent %s %s", patron.Name, eq.Brand, eq.Model),
			RelatedURL: fmt.Sprintf("/rentals/%d", rental.ID),
		}
		_ = s.noteRepo.Create(ctx, note)
		_ = s.emailSvc.SendRentalRequestNotification(ctx, lib.Email, patron.Name, eq.Brand+" "+eq.Model)
	}
}

func (s *rentalService) ApproveRental(ctx context.Context, actor domain.Identity, rentalID int32) (*domain.Rental, error) {
	if !actor.IsLibrarian() {
		return nil, domain.ErrForbidden
	}
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusPending {
		return nil, &domain.InvalidTransitionError{Reason: fmt.Sprintf("cannot approve a %s rental", rental.Status)}
	}

	// Availability may have changed since the request was made. A request
	// against equipment that is gone or held by someone else is cancelled
	// rather than left pending forever.
	eq, err := s.equipmentRepo.GetByID(ctx, rental.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq.IsDeleted || !eq.IsAvailable {
		rental.Status = domain.RentalStatusCancelled
		if err := s.rentalRepo.Update(ctx, rental); err != nil {
			return nil, err
		}
		s.notifyPatron(ctx, rental, domain.NotificationRentalDenied,
			fmt.Sprintf("Your rental request for %s %s was cancelled: the equipment is no longer available", eq.Brand, eq.Model))
		return rental, &domain.ConflictError{Entity: "equipment", Message: "Equipment no longer available; rental request cancelled."}
	}

	rental.Status = domain.RentalStatusActive
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}

	eq.IsAvailable = false
	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}

	s.notifyPatron(ctx, rental, domain.NotificationRentalApproved,
		fmt.Sprintf("Your rental request for %s %s was approved", eq.Brand, eq.Model))
	if patron, _ := s.userRepo.GetByID(ctx, rental.PatronID); patron != nil {
		_ = s.emailSvc.SendRentalApprovalNotification(ctx, patron.Email, eq.Brand+" "+eq.Model, rental.DueDate)
	}
	rental.Equipment = eq
	return rental, nil
}

func (s *rentalService) DenyRental(ctx context.Context, actor domain.Identity, rentalID int32, reason string) (*domain.Rental, error) {
	if !actor.IsLibrarian() {
		return nil, domain.ErrForbidden
	}
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusPending {
		return nil, &domain.InvalidTransitionError{Reason: fmt.Sprintf("cannot deny a %s rental", rental.Status)}
	}

	rental.Status = domain.RentalStatusCancelled
	rental.ReturnNotes = reason
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}

	eq, _ := s.equipmentRepo.GetByID(ctx, rental.EquipmentID)
	if eq != nil {
		s.notifyPatron(ctx, rental, domain.NotificationRentalDenied,
			fmt.Sprintf("Your rental request for %s %s was denied", eq.Brand, eq.Model))
		if patron, _ := s.userRepo.GetByID(ctx, rental.PatronID); patron != nil {
			_ = s.emailSvc.SendRentalDenialNotification(ctx, patron.Email, eq.Brand+" "+eq.Model, reason)
		}
	}
	return rental, nil
}

func (s *rentalService) CancelRental(ctx context.Context, actor domain.Identity, rentalID int32) (*domain.Rental, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrForbidden
	}
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.PatronID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if rental.Status != domain.RentalStatusPending {
		return nil, &domain.InvalidTransitionError{Reason: fmt.Sprintf("cannot cancel a %s rental", rental.Status)}
	}

	rental.Status = domain.RentalStatusCancelled
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}

	// A pending request never held the equipment, but force availability
	// back on anyway in case an earlier partial approval left it off.
	eq, _ := s.equipmentRepo.GetByID(ctx, rental.EquipmentID)
	if eq != nil && !eq.IsAvailable {
		eq.IsAvailable = true
		_ = s.equipmentRepo.Update(ctx, eq)
	}
	return rental, nil
}

func (s *rentalService) CompleteRental(ctx context.Context, actor domain.Identity, rentalID int32, returnCondition domain.Condition, returnNotes string) (*domain.Rental, error) {
	if !actor.IsLibrarian() {
		return nil, domain.ErrForbidden
	}
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusActive && rental.Status != domain.RentalStatusOverdue {
		return nil, &domain.InvalidTransitionError{Reason: fmt.Sprintf("cannot complete a %s rental", rental.Status)}
	}
	if returnCondition == "" {
		returnCondition = rental.CheckedOutCondition
	} else if !returnCondition.IsValid() {
		return nil, &domain.ValidationError{Field: "return_condition", Message: "Unknown condition."}
	}

	now := time.Now()
	rental.Status = domain.RentalStatusCompleted
	rental.ReturnDate = &now
	rental.ReturnCondition = returnCondition
	rental.ReturnNotes = returnNotes
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}

	eq, err := s.equipmentRepo.GetByID(ctx, rental.EquipmentID)
	if err != nil {
		return nil, err
	}
	eq.IsAvailable = true
	eq.TotalRentals++
	// The stored condition only ever ratchets toward worse; a generous
	// return assessment cannot improve it.
	if returnCondition.WorseThan(eq.Condition) {
		eq.Condition = returnCondition
	}
	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}

	if patron, _ := s.userRepo.GetByID(ctx, rental.PatronID); patron != nil {
		_ = s.emailSvc.SendReturnConfirmation(ctx, patron.Email, eq.Brand+" "+eq.Model)
	}
	rental.Equipment = eq
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, actor domain.Identity, rentalID int32) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !actor.IsLibrarian() && rental.PatronID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, actor domain.Identity, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	if !actor.IsAuthenticated() {
		return nil, 0, domain.ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	if actor.IsLibrarian() {
		return s.rentalRepo.ListAll(ctx, status, page, pageSize)
	}
	return s.rentalRepo.ListByPatron(ctx, actor.UserID, status, page, pageSize)
}

func (s *rentalService) RentalCounts(ctx context.Context, actor domain.Identity) (*domain.RentalCounts, error) {
	if !actor.IsLibrarian() {
		return nil, domain.ErrForbidden
	}
	return s.rentalRepo.CountByStatus(ctx)
}

func (s *rentalService) notifyPatron(ctx context.Context, rental *domain.Rental, noteType domain.NotificationType, message string) {
	note := &domain.Notification{
		UserID:     rental.PatronID,
		Type:       noteType,
		Message:    message,
		RelatedURL: fmt.Sprintf("/rentals/%d", rental.ID),
	}
	_ = s.noteRepo.Create(ctx, note)
}
