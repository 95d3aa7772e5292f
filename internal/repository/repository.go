package repository

import (
	"context"
	"time"

	"skirentals-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	SoftDelete(ctx context.Context, id int32) error
	// HardDelete removes the equipment and all dependent rows (rentals,
	// images, reviews, collection memberships, cart items) in a single
	// transaction.
	HardDelete(ctx context.Context, id int32) error
	// ListVisible returns non-deleted equipment the identity may see per
	// the collection privacy rules. Librarians see everything.
	ListVisible(ctx context.Context, viewer domain.Identity, page, pageSize int32) ([]domain.Equipment, int32, error)
	// SearchVisible is ListVisible narrowed by a brand/model/type/notes
	// substring match.
	SearchVisible(ctx context.Context, viewer domain.Identity, query string, limit int32) ([]domain.Equipment, error)
	// IsVisible reports whether a single item passes the visibility rules
	// for the identity.
	IsVisible(ctx context.Context, viewer domain.Identity, id int32) (bool, error)

	AddImage(ctx context.Context, image *domain.EquipmentImage) error
	GetImages(ctx context.Context, equipmentID int32) ([]domain.EquipmentImage, error)
	DeleteImage(ctx context.Context, imageID int32) error
}

type CollectionRepository interface {
	Create(ctx context.Context, col *domain.Collection) error
	GetByID(ctx context.Context, id int32) (*domain.Collection, error)
	Update(ctx context.Context, col *domain.Collection) error
	Delete(ctx context.Context, id int32) error
	// ListVisible returns collections the identity may see in listings:
	// public ones for everybody, all of them for authenticated users
	// (private collections are listed by title for awareness).
	ListVisible(ctx context.Context, viewer domain.Identity) ([]domain.Collection, error)

	AddItem(ctx context.Context, collectionID, equipmentID int32) error
	RemoveItem(ctx context.Context, collectionID, equipmentID int32) error
	HasItem(ctx context.Context, collectionID, equipmentID int32) (bool, error)
	ListItems(ctx context.Context, collectionID int32) ([]domain.Equipment, error)
	// ListForEquipment returns every collection the equipment belongs to.
	ListForEquipment(ctx context.Context, equipmentID int32) ([]domain.Collection, error)

	AddAuthorizedUser(ctx context.Context, collectionID, userID int32) error
	RemoveAuthorizedUser(ctx context.Context, collectionID, userID int32) error
}

type AccessRequestRepository interface {
	Create(ctx context.Context, req *domain.CollectionAccessRequest) error
	GetByID(ctx context.Context, id int32) (*domain.CollectionAccessRequest, error)
	GetByCollectionAndUser(ctx context.Context, collectionID, userID int32) (*domain.CollectionAccessRequest, error)
	Update(ctx context.Context, req *domain.CollectionAccessRequest) error
	// ListPendingForCreator returns pending requests against collections
	// created by the given user.
	ListPendingForCreator(ctx context.Context, creatorID int32) ([]domain.CollectionAccessRequest, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.CollectionAccessRequest, error)
}

type CartRepository interface {
	GetOrCreateByUser(ctx context.Context, userID int32) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID int32) (*domain.Cart, error)
	AddItem(ctx context.Context, item *domain.CartItem) error
	GetItem(ctx context.Context, itemID int32) (*domain.CartItem, error)
	HasItem(ctx context.Context, cartID, equipmentID int32) (bool, error)
	// ListItems returns cart items with Equipment populated.
	ListItems(ctx context.Context, cartID int32) ([]domain.CartItem, error)
	RemoveItem(ctx context.Context, itemID int32) error
	Clear(ctx context.Context, cartID int32) error
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	ListByPatron(ctx context.Context, patronID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	ListAll(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	CountByStatus(ctx context.Context) (*domain.RentalCounts, error)
	// MarkOverdue flips ACTIVE rentals whose due date has passed to OVERDUE
	// and returns the affected rental ids.
	MarkOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	GetByEquipmentAndUser(ctx context.Context, equipmentID, userID int32) (*domain.Review, error)
	ListByEquipment(ctx context.Context, equipmentID int32) ([]domain.Review, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit int32) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	MarkAllAsRead(ctx context.Context, userID int32) error
}
