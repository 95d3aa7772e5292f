package service

import (
	"context"
	"time"

	"skirentals-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, phone string, preferredDuration domain.RentalDuration) (*domain.User, error)
}

type EquipmentService interface {
	AddEquipment(ctx context.Context, actor domain.Identity, eq *domain.Equipment) (*domain.Equipment, error)
	GetEquipment(ctx context.Context, viewer domain.Identity, id int32) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, actor domain.Identity, eq *domain.Equipment) (*domain.Equipment, error)
	DeleteEquipment(ctx context.Context, actor domain.Identity, id int32, hard bool) error
	ListEquipment(ctx context.Context, viewer domain.Identity, page, pageSize int32) ([]domain.Equipment, int32, error)
	SearchEquipment(ctx context.Context, viewer domain.Identity, query string, limit int32) ([]domain.Equipment, error)

	AddImage(ctx context.Context, actor domain.Identity, image *domain.EquipmentImage) (*domain.EquipmentImage, error)
	ListImages(ctx context.Context, viewer domain.Identity, equipmentID int32) ([]domain.EquipmentImage, error)
	DeleteImage(ctx context.Context, actor domain.Identity, equipmentID, imageID int32) error
}

type CollectionService interface {
	CreateCollection(ctx context.Context, actor domain.Identity, title, description string, sharing domain.SharingType) (*domain.Collection, error)
	GetCollection(ctx context.Context, viewer domain.Identity, id int32) (*domain.Collection, []domain.Equipment, error)
	UpdateCollection(ctx context.Context, actor domain.Identity, id int32, title, description string, sharing domain.SharingType) (*domain.Collection, error)
	DeleteCollection(ctx context.Context, actor domain.Identity, id int32) error
	ListCollections(ctx context.Context, viewer domain.Identity) ([]domain.Collection, error)

	AddItem(ctx context.Context, actor domain.Identity, collectionID, equipmentID int32) error
	RemoveItem(ctx context.Context, actor domain.Identity, collectionID, equipmentID int32) error

	RequestAccess(ctx context.Context, actor domain.Identity, collectionID int32) (*domain.CollectionAccessRequest, error)
	ApproveAccess(ctx context.Context, actor domain.Identity, requestID int32, note string) (*domain.CollectionAccessRequest, error)
	DenyAccess(ctx context.Context, actor domain.Identity, requestID int32, note string) (*domain.CollectionAccessRequest, error)
	ListPendingRequests(ctx context.Context, actor domain.Identity) ([]domain.CollectionAccessRequest, error)
	GrantUser(ctx context.Context, actor domain.Identity, collectionID, userID int32) error
	RevokeUser(ctx context.Context, actor domain.Identity, collectionID, userID int32) error
}

type CartService interface {
	GetCart(ctx context.Context, actor domain.Identity) ([]domain.CartItem, *domain.CartSummary, error)
	AddToCart(ctx context.Context, actor domain.Identity, equipmentID int32, start, end time.Time, duration domain.RentalDuration) (*domain.CartItem, error)
	// QuickAdd adds an item using the patron's preferred duration with a
	// default date range starting today.
	QuickAdd(ctx context.Context, actor domain.Identity, equipmentID int32) (*domain.CartItem, error)
	RemoveFromCart(ctx context.Context, actor domain.Identity, itemID int32) error
	ClearCart(ctx context.Context, actor domain.Identity) error
	// Checkout converts every available cart item into a PENDING rental and
	// clears the cart. Items that became unavailable are skipped and dropped
	// from the cart. Returns the created rentals and the skipped count.
	Checkout(ctx context.Context, actor domain.Identity) ([]domain.Rental, int32, error)
}

type RentalService interface {
	RequestRental(ctx context.Context, actor domain.Identity, equipmentID int32, duration domain.RentalDuration, start, due time.Time, notes string) (*domain.Rental, error)
	ApproveRental(ctx context.Context, actor domain.Identity, rentalID int32) (*domain.Rental, error)
	DenyRental(ctx context.Context, actor domain.Identity, rentalID int32, reason string) (*domain.Rental, error)
	CancelRental(ctx context.Context, actor domain.Identity, rentalID int32) (*domain.Rental, error)
	CompleteRental(ctx context.Context, actor domain.Identity, rentalID int32, returnCondition domain.Condition, returnNotes string) (*domain.Rental, error)
	GetRental(ctx context.Context, actor domain.Identity, rentalID int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, actor domain.Identity, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	RentalCounts(ctx context.Context, actor domain.Identity) (*domain.RentalCounts, error)
}

type ReviewService interface {
	// SubmitReview creates the actor's review for the equipment, or replaces
	// it if one already exists, then recomputes the aggregate rating.
	SubmitReview(ctx context.Context, actor domain.Identity, equipmentID int32, rating int32, comment string) (*domain.Review, error)
	ListReviews(ctx context.Context, viewer domain.Identity, equipmentID int32) ([]domain.Review, *domain.RatingDistribution, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, actor domain.Identity, limit int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, actor domain.Identity, notificationID int32) error
	MarkAllAsRead(ctx context.Context, actor domain.Identity) error
}

type EmailService interface {
	SendRentalRequestNotification(ctx context.Context, librarianEmail, patronName, itemName string) error
	SendRentalApprovalNotification(ctx context.Context, patronEmail, itemName string, dueDate time.Time) error
	SendRentalDenialNotification(ctx context.Context, patronEmail, itemName, reason string) error
	SendReturnConfirmation(ctx context.Context, patronEmail, itemName string) error
	SendOverdueNotice(ctx context.Context, patronEmail, itemName string, dueDate time.Time) error
}
