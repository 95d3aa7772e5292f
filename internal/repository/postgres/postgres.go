package postgres

import (
	"database/sql"

	"skirentals-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.EquipmentRepository
	repository.CollectionRepository
	repository.AccessRequestRepository
	repository.CartRepository
	repository.RentalRepository
	repository.ReviewRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		EquipmentRepository:     NewEquipmentRepository(db),
		CollectionRepository:    NewCollectionRepository(db),
		AccessRequestRepository: NewAccessRequestRepository(db),
		CartRepository:          NewCartRepository(db),
		RentalRepository:        NewRentalRepository(db),
		ReviewRepository:        NewReviewRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
	}
}
