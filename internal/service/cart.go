package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
	"skirentals-backend/internal/utils"
)

// Default rental spans used by quick add, keyed by duration.
var quickAddSpans = map[domain.RentalDuration]int{
	domain.RentalDurationDaily:    1,
	domain.RentalDurationWeekly:   7,
	domain.RentalDurationSeasonal: 90,
}

type cartService struct {
	cartRepo      repository.CartRepository
	equipmentRepo repository.EquipmentRepository
	rentalRepo    repository.RentalRepository
	userRepo      repository.UserRepository
	noteRepo      repository.NotificationRepository
	emailSvc      EmailService
}

func NewCartService(
	cartRepo repository.CartRepository,
	equipmentRepo repository.EquipmentRepository,
	rentalRepo repository.RentalRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) CartService {
	return &cartService{
		cartRepo:      cartRepo,
		equipmentRepo: equipmentRepo,
		rentalRepo:    rentalRepo,
		userRepo:      userRepo,
		noteRepo:      noteRepo,
		emailSvc:      emailSvc,
	}
}

func (s *cartService) GetCart(ctx context.Context, actor domain.Identity) ([]domain.CartItem, *domain.CartSummary, error) {
	if !actor.IsAuthenticated() {
		return nil, nil, domain.ErrForbidden
	}
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, actor.UserID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, nil, err
	}
	summary := utils.SummarizeCart(items)
	return items, &summary, nil
}

func (s *cartService) AddToCart(ctx context.Context, actor domain.Identity, equipmentID int32, start, end time.Time, duration domain.RentalDuration) (*domain.CartItem, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrForbidden
	}
	if !duration.IsValid() {
		return nil, &domain.ValidationError{Field: "duration", Message: "Unknown rental duration."}
	}
	if end.Before(start) {
		return nil, &domain.ValidationError{Field: "end_date", Message: "End date must not be before the start date."}
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

	cart, err := s.cartRepo.GetOrCreateByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	dup, err := s.cartRepo.HasItem(ctx, cart.ID, equipmentID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, &domain.ConflictError{Entity: "cart_item", Message: "Equipment is already in your cart."}
	}

	item := &domain.CartItem{
		CartID:      cart.ID,
		EquipmentID: equipmentID,
		StartDate:   start,
		EndDate:     end,
		Duration:    duration,
	}
	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	item.Equipment = eq
	return item, nil
}

func (s *cartService) QuickAdd(ctx context.Context, actor domain.Identity, equipmentID int32) (*domain.CartItem, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrForbidden
	}
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	duration := user.PreferredDuration
	if !duration.IsValid() {
		duration = domain.RentalDurationDaily
	}
	start := time.Now()
	end := start.AddDate(0, 0, quickAddSpans[duration])
	return s.AddToCart(ctx, actor, equipmentID, start, end, duration)
}

func (s *cartService) RemoveFromCart(ctx context.Context, actor domain.Identity, itemID int32) error {
	if !actor.IsAuthenticated() {
		return domain.ErrForbidden
	}
	item, err := s.cartRepo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	cart, err := s.cartRepo.GetByUser(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if item.CartID != cart.ID {
		return domain.ErrForbidden
	}
	return s.cartRepo.RemoveItem(ctx, itemID)
}

func (s *cartService) ClearCart(ctx context.Context, actor domain.Identity) error {
	if !actor.IsAuthenticated() {
		return domain.ErrForbidden
	}
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, actor.UserID)
	if err != nil {
		return err
	}
	return s.cartRepo.Clear(ctx, cart.ID)
}

func (s *cartService) Checkout(ctx context.Context, actor domain.Identity) ([]domain.Rental, int32, error) {
	if !actor.IsAuthenticated() {
		return nil, 0, domain.ErrForbidden
	}
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, actor.UserID)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return nil, 0, &domain.ValidationError{Field: "cart", Message: "Your cart is empty."}
	}

	var rentals []domain.Rental
	var skipped int32
	for i := range items {
		item := &items[i]
		// Re-read each item so a change since it was added is seen.
		eq, err := s.equipmentRepo.GetByID(ctx, item.EquipmentID)
		if err != nil || eq.IsDeleted || !eq.IsAvailable {
			if err != nil && !isNotFound(err) {
				return nil, 0, err
			}
			skipped++
			continue
		}

		item.Equipment = eq
		rental := &domain.Rental{
			EquipmentID:         item.EquipmentID,
			PatronID:            actor.UserID,
			Duration:            item.Duration,
			Status:              domain.RentalStatusPending,
			PriceCents:          utils.CartItemSubtotal(item),
			CheckoutDate:        item.StartDate,
			DueDate:             item.EndDate,
			CheckedOutCondition: eq.Condition,
		}
		if err := s.rentalRepo.Create(ctx, rental); err != nil {
			return nil, 0, err
		}
		rental.Equipment = eq
		rentals = append(rentals, *rental)
	}

	if err := s.cartRepo.Clear(ctx, cart.ID); err != nil {
		return nil, 0, err
	}

	if len(rentals) > 0 {
		s.notifyLibrariansOfCheckout(ctx, actor, rentals)
	}
	return rentals, skipped, nil
}

func (s *cartService) notifyLibrariansOfCheckout(ctx context.Context, actor domain.Identity, rentals []domain.Rental) {
	patron, _ := s.userRepo.GetByID(ctx, actor.UserID)
	if patron == nil {
		return
	}
	librarians, _ := s.userRepo.ListByRole(ctx, domain.RoleLibrarian)
	for i := range librarians {
		lib := &librarians[i]
		note := &domain.Notification{
			UserID:     lib.ID,
			Type:       domain.NotificationRentalRequest,
			Message:    fmt.Sprintf("%s submitted %d rental request(s)", patron.Name, len(rentals)),
			RelatedURL: "/rentals?status=PENDING",
		}
		_ = s.noteRepo.Create(ctx, note)
		if len(rentals) > 0 && rentals[0].Equipment != nil {
			eq := rentals[0].Equipment
			_ = s.emailSvc.SendRentalRequestNotification(ctx, lib.Email, patron.Name, eq.Brand+" "+eq.Model)
		}
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
