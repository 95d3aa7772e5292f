package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skirentals-backend/internal/domain"
	"skirentals-backend/internal/repository"
)

type collectionService struct {
	collectionRepo repository.CollectionRepository
	requestRepo    repository.AccessRequestRepository
	equipmentRepo  repository.EquipmentRepository
	userRepo       repository.UserRepository
	noteRepo       repository.NotificationRepository
}

func NewCollectionService(
	collectionRepo repository.CollectionRepository,
	requestRepo repository.AccessRequestRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
) CollectionService {
	return &collectionService{
		collectionRepo: collectionRepo,
		requestRepo:    requestRepo,
		equipmentRepo:  equipmentRepo,
		userRepo:       userRepo,
		noteRepo:       noteRepo,
	}
}

func (s *collectionService) CreateCollection(ctx context.Context, actor domain.Identity, title, description string, sharing domain.SharingType) (*domain.Collection, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrForbidden
	}
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Message: "Title is required."}
	}
	// Patrons cannot create private collections; the request is accepted
	// with the sharing type coerced to PUBLIC rather than rejected.
	if !actor.IsLibrarian() {
		sharing = domain.SharingTypePublic
	}
	if sharing != domain.SharingTypePublic && sharing != domain.SharingTypePrivate {
		sharing = domain.SharingTypePublic
	}

	col := &domain.Collection{
		Title:       title,
		Description: description,
		SharingType: sharing,
		CreatorID:   actor.UserID,
	}
	if err := s.collectionRepo.Create(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *collectionService) GetCollection(ctx context.Context, viewer domain.Identity, id int32) (*domain.Collection, []domain.Equipment, error) {
	col, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !col.CanList(viewer) {
		return nil, nil, domain.ErrNotFound
	}
	// Listed but locked: the collection metadata is returned, the item set
	// only to identities with content access.
	if !col.CanViewContents(viewer) {
		return col, nil, nil
	}
	items, err := s.collectionRepo.ListItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return col, items, nil
}

func (s *collectionService) UpdateCollection(ctx context.Context, actor domain.Identity, id int32, title, description string, sharing domain.SharingType) (*domain.Collection, error) {
	col, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !col.CanMutate(actor) {
		return nil, domain.ErrForbidden
	}
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Message: "Title is required."}
	}
	if !actor.IsLibrarian() {
		sharing = domain.SharingTypePublic
	}

	// Going private is only allowed when every item in the collection
	// belongs to it exclusively.
	if col.SharingType == domain.SharingTypePublic && sharing == domain.SharingTypePrivate {
		items, err := s.collectionRepo.ListItems(ctx, id)
		if err != nil {
			return nil, err
		}
		for i := range items {
			owners, err := s.collectionRepo.ListForEquipment(ctx, items[i].ID)
			if err != nil {
				return nil, err
			}
			for _, other := range owners {
				if other.ID != id {
					return nil, &domain.ConflictError{
						Entity:  "collection",
						Message: fmt.Sprintf("Cannot make collection private: %s %s also belongs to collection %q.", items[i].Brand, items[i].Model, other.Title),
					}
				}
			}
		}
	}

	col.Title = title
	col.Description = description
	col.SharingType = sharing
	if err := s.collectionRepo.Update(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *collectionService) DeleteCollection(ctx context.Context, actor domain.Identity, id int32) error {
	col, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !col.CanMutate(actor) {
		return domain.ErrForbidden
	}
	return s.collectionRepo.Delete(ctx, id)
}

func (s *collectionService) ListCollections(ctx context.Context, viewer domain.Identity) ([]domain.Collection, error) {
	return s.collectionRepo.ListVisible(ctx, viewer)
}

func (s *collectionService) AddItem(ctx context.Context, actor domain.Identity, collectionID, equipmentID int32) error {
	col, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if !col.CanMutate(actor) {
		return domain.ErrForbidden
	}
	if _, err := s.equipmentRepo.GetByID(ctx, equipmentID); err != nil {
		return err
	}

	// Private collections own their items exclusively: an item already in
	// any other collection cannot be added, and an item in a private
	// collection cannot join another one.
	owners, err := s.collectionRepo.ListForEquipment(ctx, equipmentID)
	if err != nil {
		return err
	}
	for _, other := range owners {
		if other.ID == collectionID {
			return nil
		}
		if col.SharingType == domain.SharingTypePrivate || other.SharingType == domain.SharingTypePrivate {
			return &domain.ConflictError{
				Entity:  "collection",
				Message: fmt.Sprintf("Equipment already belongs to collection %q.", other.Title),
			}
		}
	}
	return s.collectionRepo.AddItem(ctx, collectionID, equipmentID)
}

func (s *collectionService) RemoveItem(ctx context.Context, actor domain.Identity, collectionID, equipmentID int32) error {
	col, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if !col.CanMutate(actor) {
		return domain.ErrForbidden
	}
	ok, err := s.collectionRepo.HasItem(ctx, collectionID, equipmentID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return s.collectionRepo.RemoveItem(ctx, collectionID, equipmentID)
}

func (s *collectionService) RequestAccess(ctx context.Context, actor domain.Identity, collectionID int32) (*domain.CollectionAccessRequest, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrForbidden
	}
	col, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if col.SharingType != domain.SharingTypePrivate {
		return nil, &domain.ValidationError{Field: "collection", Message: "Access requests only apply to private collections."}
	}
	if col.CanViewContents(actor) {
		return nil, &domain.ConflictError{Entity: "access_request", Message: "You already have access to this collection."}
	}

	existing, err := s.requestRepo.GetByCollectionAndUser(ctx, collectionID, actor.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case domain.AccessRequestPending:
			// Resubmitting while pending is a no-op.
			return existing, nil
		case domain.AccessRequestApproved:
			return nil, &domain.ConflictError{Entity: "access_request", Message: "Your request was already approved."}
		default:
			existing.Status = domain.AccessRequestPending
			existing.RequestDate = time.Now()
			existing.ResponseDate = nil
			existing.ResponseNote = ""
			if err := s.requestRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
			s.notifyCreator(ctx, col, actor)
			return existing, nil
		}
	}

	req := &domain.CollectionAccessRequest{
		CollectionID: collectionID,
		UserID:       actor.UserID,
		Status:       domain.AccessRequestPending,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	s.notifyCreator(ctx, col, actor)
	return req, nil
}

func (s *collectionService) notifyCreator(ctx context.Context, col *domain.Collection, requester domain.Identity) {
	user, _ := s.userRepo.GetByID(ctx, requester.UserID)
	if user == nil {
		return
	}
	note := &domain.Notification{
		UserID:     col.CreatorID,
		Type:       domain.NotificationCollectionRequest,
		Message:    fmt.Sprintf("%s requested access to collection %q", user.Name, col.Title),
		RelatedURL: fmt.Sprintf("/collections/%d/requests", col.ID),
	}
	_ = s.noteRepo.Create(ctx, note)
}

func (s *collectionService) ApproveAccess(ctx context.Context, actor domain.Identity, requestID int32, note string) (*domain.CollectionAccessRequest, error) {
	req, col, err := s.pendingRequestForCreator(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	req.Status = domain.AccessRequestApproved
	req.ResponseDate = &now
	req.ResponseNote = note
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	if err := s.collectionRepo.AddAuthorizedUser(ctx, col.ID, req.UserID); err != nil {
		return nil, err
	}

	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:     req.UserID,
		Type:       domain.NotificationCollectionApproved,
		Message:    fmt.Sprintf("Your access request for collection %q was approved", col.Title),
		RelatedURL: fmt.Sprintf("/collections/%d", col.ID),
	})
	return req, nil
}

func (s *collectionService) DenyAccess(ctx context.Context, actor domain.Identity, requestID int32, note string) (*domain.CollectionAccessRequest, error) {
	req, col, err := s.pendingRequestForCreator(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	req.Status = domain.AccessRequestDenied
	req.ResponseDate = &now
	req.ResponseNote = note
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:     req.UserID,
		Type:       domain.NotificationCollectionDenied,
		Message:    fmt.Sprintf("Your access request for collection %q was denied", col.Title),
		RelatedURL: fmt.Sprintf("/collections/%d", col.ID),
	})
	return req, nil
}

func (s *collectionService) pendingRequestForCreator(ctx context.Context, actor domain.Identity, requestID int32) (*domain.CollectionAccessRequest, *domain.Collection, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	col, err := s.collectionRepo.GetByID(ctx, req.CollectionID)
	if err != nil {
		return nil, nil, err
	}
	if !col.CanMutate(actor) {
		return nil, nil, domain.ErrForbidden
	}
	if req.Status != domain.AccessRequestPending {
		return nil, nil, &domain.InvalidTransitionError{Reason: fmt.Sprintf("request is already %s", req.Status)}
	}
	return req, col, nil
}

func (s *collectionService) ListPendingRequests(ctx context.Context, actor domain.Identity) ([]domain.CollectionAccessRequest, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrForbidden
	}
	return s.requestRepo.ListPendingForCreator(ctx, actor.UserID)
}

func (s *collectionService) GrantUser(ctx context.Context, actor domain.Identity, collectionID, userID int32) error {
	col, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if !col.CanMutate(actor) {
		return domain.ErrForbidden
	}
	if userID == col.CreatorID {
		return &domain.ValidationError{Field: "user_id", Message: "The creator already has access."}
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.collectionRepo.AddAuthorizedUser(ctx, collectionID, userID)
}

func (s *collectionService) RevokeUser(ctx context.Context, actor domain.Identity, collectionID, userID int32) error {
	col, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if !col.CanMutate(actor) {
		return domain.ErrForbidden
	}
	return s.collectionRepo.RemoveAuthorizedUser(ctx, collectionID, userID)
}
