package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"skirentals-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) HardDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ListVisible(ctx context.Context, viewer domain.Identity, page, pageSize int32) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, viewer, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}
func (m *MockEquipmentRepo) SearchVisible(ctx context.Context, viewer domain.Identity, query string, limit int32) ([]domain.Equipment, error) {
	args := m.Called(ctx, viewer, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) IsVisible(ctx context.Context, viewer domain.Identity, id int32) (bool, error) {
	args := m.Called(ctx, viewer, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockEquipmentRepo) AddImage(ctx context.Context, image *domain.EquipmentImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetImages(ctx context.Context, equipmentID int32) ([]domain.EquipmentImage, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EquipmentImage), args.Error(1)
}
func (m *MockEquipmentRepo) DeleteImage(ctx context.Context, imageID int32) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

// MockCollectionRepo
type MockCollectionRepo struct {
	mock.Mock
}

func (m *MockCollectionRepo) Create(ctx context.Context, col *domain.Collection) error {
	args := m.Called(ctx, col)
	return args.Error(0)
}
func (m *MockCollectionRepo) GetByID(ctx context.Context, id int32) (*domain.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}
func (m *MockCollectionRepo) Update(ctx context.Context, col *domain.Collection) error {
	args := m.Called(ctx, col)
	return args.Error(0)
}
func (m *MockCollectionRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCollectionRepo) ListVisible(ctx context.Context, viewer domain.Identity) ([]domain.Collection, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Collection), args.Error(1)
}
func (m *MockCollectionRepo) AddItem(ctx context.Context, collectionID, equipmentID int32) error {
	args := m.Called(ctx, collectionID, equipmentID)
	return args.Error(0)
}
func (m *MockCollectionRepo) RemoveItem(ctx context.Context, collectionID, equipmentID int32) error {
	args := m.Called(ctx, collectionID, equipmentID)
	return args.Error(0)
}
func (m *MockCollectionRepo) HasItem(ctx context.Context, collectionID, equipmentID int32) (bool, error) {
	args := m.Called(ctx, collectionID, equipmentID)
	return args.Bool(0), args.Error(1)
}
func (m *MockCollectionRepo) ListItems(ctx context.Context, collectionID int32) ([]domain.Equipment, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockCollectionRepo) ListForEquipment(ctx context.Context, equipmentID int32) ([]domain.Collection, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Collection), args.Error(1)
}
func (m *MockCollectionRepo) AddAuthorizedUser(ctx context.Context, collectionID, userID int32) error {
	args := m.Called(ctx, collectionID, userID)
	return args.Error(0)
}
func (m *MockCollectionRepo) RemoveAuthorizedUser(ctx context.Context, collectionID, userID int32) error {
	args := m.Called(ctx, collectionID, userID)
	return args.Error(0)
}

// MockAccessRequestRepo
type MockAccessRequestRepo struct {
	mock.Mock
}

func (m *MockAccessRequestRepo) Create(ctx context.Context, req *domain.CollectionAccessRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockAccessRequestRepo) GetByID(ctx context.Context, id int32) (*domain.CollectionAccessRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionAccessRequest), args.Error(1)
}
func (m *MockAccessRequestRepo) GetByCollectionAndUser(ctx context.Context, collectionID, userID int32) (*domain.CollectionAccessRequest, error) {
	args := m.Called(ctx, collectionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionAccessRequest), args.Error(1)
}
func (m *MockAccessRequestRepo) Update(ctx context.Context, req *domain.CollectionAccessRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockAccessRequestRepo) ListPendingForCreator(ctx context.Context, creatorID int32) ([]domain.CollectionAccessRequest, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectionAccessRequest), args.Error(1)
}
func (m *MockAccessRequestRepo) ListByUser(ctx context.Context, userID int32) ([]domain.CollectionAccessRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectionAccessRequest), args.Error(1)
}

// MockCartRepo
type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) GetOrCreateByUser(ctx context.Context, userID int32) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}
func (m *MockCartRepo) GetByUser(ctx context.Context, userID int32) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}
func (m *MockCartRepo) AddItem(ctx context.Context, item *domain.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockCartRepo) GetItem(ctx context.Context, itemID int32) (*domain.CartItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}
func (m *MockCartRepo) HasItem(ctx context.Context, cartID, equipmentID int32) (bool, error) {
	args := m.Called(ctx, cartID, equipmentID)
	return args.Bool(0), args.Error(1)
}
func (m *MockCartRepo) ListItems(ctx context.Context, cartID int32) ([]domain.CartItem, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartItem), args.Error(1)
}
func (m *MockCartRepo) RemoveItem(ctx context.Context, itemID int32) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}
func (m *MockCartRepo) Clear(ctx context.Context, cartID int32) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByPatron(ctx context.Context, patronID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, patronID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListAll(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) CountByStatus(ctx context.Context) (*domain.RentalCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalCounts), args.Error(1)
}
func (m *MockRentalRepo) MarkOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) GetByEquipmentAndUser(ctx context.Context, equipmentID, userID int32) (*domain.Review, error) {
	args := m.Called(ctx, equipmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListByEquipment(ctx context.Context, equipmentID int32) ([]domain.Review, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit int32) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) CountUnread(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) MarkAllAsRead(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalRequestNotification(ctx context.Context, librarianEmail, patronName, itemName string) error {
	args := m.Called(ctx, librarianEmail, patronName, itemName)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalApprovalNotification(ctx context.Context, patronEmail, itemName string, dueDate time.Time) error {
	args := m.Called(ctx, patronEmail, itemName, dueDate)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalDenialNotification(ctx context.Context, patronEmail, itemName, reason string) error {
	args := m.Called(ctx, patronEmail, itemName, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnConfirmation(ctx context.Context, patronEmail, itemName string) error {
	args := m.Called(ctx, patronEmail, itemName)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueNotice(ctx context.Context, patronEmail, itemName string, dueDate time.Time) error {
	args := m.Called(ctx, patronEmail, itemName, dueDate)
	return args.Error(0)
}
