package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skirentals-backend/internal/domain"
)

var (
	patronIdentity    = domain.Identity{UserID: 10, Role: domain.RolePatron}
	librarianIdentity = domain.Identity{UserID: 1, Role: domain.RoleLibrarian}
)

func newRentalServiceForTest() (*rentalService, *MockRentalRepo, *MockEquipmentRepo, *MockUserRepo, *MockNotificationRepo, *MockEmailService) {
	rentalRepo := new(MockRentalRepo)
	equipmentRepo := new(MockEquipmentRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := NewRentalService(rentalRepo, equipmentRepo, userRepo, noteRepo, emailSvc).(*rentalService)
	return svc, rentalRepo, equipmentRepo, userRepo, noteRepo, emailSvc
}

func TestRequestRental(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	due := start.AddDate(0, 0, 7)

	t.Run("creates pending rental and notifies librarians", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, userRepo, noteRepo, emailSvc := newRentalServiceForTest()

		eq := &domain.Equipment{
			ID: 5, Brand: "Rossignol", Model: "Experience 88",
			Condition: domain.ConditionExcellent, IsAvailable: true,
			DailyRateCents: 5000,
		}
		equipmentRepo.On("IsVisible", mock.Anything, patronIdentity, int32(5)).Return(true, nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(eq, nil)
		rentalRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)
		userRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, Name: "Alice"}, nil)
		userRepo.On("ListByRole", mock.Anything, domain.RoleLibrarian).Return([]domain.User{
			{ID: 1, Email: "lib@example.com"},
		}, nil)
		noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
		emailSvc.On("SendRentalRequestNotification", mock.Anything, "lib@example.com", "Alice", "Rossignol Experience 88").Return(nil)

		rental, err := svc.RequestRental(ctx, patronIdentity, 5, domain.RentalDurationWeekly, start, due, "first run of the season")
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPending, rental.Status)
		assert.Equal(t, int32(10), rental.PatronID)
		assert.Equal(t, domain.ConditionExcellent, rental.CheckedOutCondition)
		assert.Equal(t, int64(25000), rental.PriceCents) // weekly fallback 5x daily
		rentalRepo.AssertExpectations(t)
		noteRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("rejects anonymous caller", func(t *testing.T) {
		svc, _, _, _, _, _ := newRentalServiceForTest()
		_, err := svc.RequestRental(ctx, domain.Anonymous, 5, domain.RentalDurationDaily, start, due, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("rejects unavailable equipment", func(t *testing.T) {
		svc, _, equipmentRepo, _, _, _ := newRentalServiceForTest()
		equipmentRepo.On("IsVisible", mock.Anything, patronIdentity, int32(5)).Return(true, nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(&domain.Equipment{ID: 5, IsAvailable: false}, nil)

		_, err := svc.RequestRental(ctx, patronIdentity, 5, domain.RentalDurationDaily, start, due, "")
		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("rejects due date before start", func(t *testing.T) {
		svc, _, _, _, _, _ := newRentalServiceForTest()
		_, err := svc.RequestRental(ctx, patronIdentity, 5, domain.RentalDurationDaily, due, start, "")
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "due_date", validation.Field)
	})

	t.Run("hidden equipment reads as not found", func(t *testing.T) {
		svc, _, equipmentRepo, _, _, _ := newRentalServiceForTest()
		equipmentRepo.On("IsVisible", mock.Anything, patronIdentity, int32(5)).Return(false, nil)
		_, err := svc.RequestRental(ctx, patronIdentity, 5, domain.RentalDurationDaily, start, due, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestApproveRental(t *testing.T) {
	ctx := context.Background()

	t.Run("activates rental and takes equipment off the shelf", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, userRepo, noteRepo, emailSvc := newRentalServiceForTest()

		rental := &domain.Rental{ID: 7, EquipmentID: 5, PatronID: 10, Status: domain.RentalStatusPending, DueDate: time.Now().AddDate(0, 0, 7)}
		eq := &domain.Equipment{ID: 5, Brand: "Atomic", Model: "Bent 100", IsAvailable: true, TotalRentals: 3}
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(rental, nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(eq, nil)
		rentalRepo.On("Update", mock.Anything, rental).Return(nil)
		equipmentRepo.On("Update", mock.Anything, eq).Return(nil)
		noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
		userRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, Email: "alice@example.com"}, nil)
		emailSvc.On("SendRentalApprovalNotification", mock.Anything, "alice@example.com", "Atomic Bent 100", mock.AnythingOfType("time.Time")).Return(nil)

		got, err := svc.ApproveRental(ctx, librarianIdentity, 7)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusActive, got.Status)
		assert.False(t, eq.IsAvailable)
		// The counter moves on completion, not approval.
		assert.Equal(t, int32(3), eq.TotalRentals)
		rentalRepo.AssertExpectations(t)
		equipmentRepo.AssertExpectations(t)
	})

	t.Run("cancels the request when equipment is gone", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, _, noteRepo, _ := newRentalServiceForTest()

		rental := &domain.Rental{ID: 7, EquipmentID: 5, PatronID: 10, Status: domain.RentalStatusPending}
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(rental, nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(&domain.Equipment{ID: 5, IsAvailable: false}, nil)
		rentalRepo.On("Update", mock.Anything, rental).Return(nil)
		noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

		got, err := svc.ApproveRental(ctx, librarianIdentity, 7)
		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.NotNil(t, got)
		assert.Equal(t, domain.RentalStatusCancelled, got.Status)
		rentalRepo.AssertExpectations(t)
		noteRepo.AssertExpectations(t)
	})

	t.Run("rejects non-pending rental", func(t *testing.T) {
		svc, rentalRepo, _, _, _, _ := newRentalServiceForTest()
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Rental{ID: 7, Status: domain.RentalStatusActive}, nil)

		_, err := svc.ApproveRental(ctx, librarianIdentity, 7)
		var transition *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &transition)
	})

	t.Run("rejects patrons", func(t *testing.T) {
		svc, _, _, _, _, _ := newRentalServiceForTest()
		_, err := svc.ApproveRental(ctx, patronIdentity, 7)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestDenyRental(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels pending rental with reason", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, userRepo, noteRepo, emailSvc := newRentalServiceForTest()

		rental := &domain.Rental{ID: 7, EquipmentID: 5, PatronID: 10, Status: domain.RentalStatusPending}
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(rental, nil)
		rentalRepo.On("Update", mock.Anything, rental).Return(nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(&domain.Equipment{ID: 5, Brand: "K2", Model: "Mindbender"}, nil)
		noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
		userRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, Email: "alice@example.com"}, nil)
		emailSvc.On("SendRentalDenialNotification", mock.Anything, "alice@example.com", "K2 Mindbender", "out for maintenance").Return(nil)

		got, err := svc.DenyRental(ctx, librarianIdentity, 7, "out for maintenance")
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, got.Status)
		assert.Equal(t, "out for maintenance", got.ReturnNotes)
	})

	t.Run("rejects active rental", func(t *testing.T) {
		svc, rentalRepo, _, _, _, _ := newRentalServiceForTest()
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Rental{ID: 7, Status: domain.RentalStatusActive}, nil)

		_, err := svc.DenyRental(ctx, librarianIdentity, 7, "")
		var transition *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &transition)
	})
}

func TestCancelRental(t *testing.T) {
	ctx := context.Background()

	t.Run("patron cancels own pending request", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, _, _, _ := newRentalServiceForTest()

		rental := &domain.Rental{ID: 7, EquipmentID: 5, PatronID: 10, Status: domain.RentalStatusPending}
		eq := &domain.Equipment{ID: 5, IsAvailable: false}
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(rental, nil)
		rentalRepo.On("Update", mock.Anything, rental).Return(nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(eq, nil)
		equipmentRepo.On("Update", mock.Anything, eq).Return(nil)

		got, err := svc.CancelRental(ctx, patronIdentity, 7)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, got.Status)
		assert.True(t, eq.IsAvailable)
	})

	t.Run("rejects someone else's rental", func(t *testing.T) {
		svc, rentalRepo, _, _, _, _ := newRentalServiceForTest()
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Rental{ID: 7, PatronID: 99, Status: domain.RentalStatusPending}, nil)

		_, err := svc.CancelRental(ctx, patronIdentity, 7)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("rejects active rental", func(t *testing.T) {
		svc, rentalRepo, _, _, _, _ := newRentalServiceForTest()
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Rental{ID: 7, PatronID: 10, Status: domain.RentalStatusActive}, nil)

		_, err := svc.CancelRental(ctx, patronIdentity, 7)
		var transition *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &transition)
	})
}

func TestCompleteRental(t *testing.T) {
	ctx := context.Background()

	t.Run("worse return condition sticks", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, userRepo, _, emailSvc := newRentalServiceForTest()

		rental := &domain.Rental{ID: 7, EquipmentID: 5, PatronID: 10, Status: domain.RentalStatusActive}
		eq := &domain.Equipment{ID: 5, Brand: "Salomon", Model: "QST", Condition: domain.ConditionGood, IsAvailable: false, TotalRentals: 3}
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(rental, nil)
		rentalRepo.On("Update", mock.Anything, rental).Return(nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(eq, nil)
		equipmentRepo.On("Update", mock.Anything, eq).Return(nil)
		userRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, Email: "alice@example.com"}, nil)
		emailSvc.On("SendReturnConfirmation", mock.Anything, "alice@example.com", "Salomon QST").Return(nil)

		got, err := svc.CompleteRental(ctx, librarianIdentity, 7, domain.ConditionPoor, "edge damage")
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, got.Status)
		require.NotNil(t, got.ReturnDate)
		assert.Equal(t, domain.ConditionPoor, eq.Condition)
		assert.True(t, eq.IsAvailable)
		assert.Equal(t, int32(4), eq.TotalRentals)
	})

	t.Run("empty return condition defaults to checked-out condition", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, userRepo, _, emailSvc := newRentalServiceForTest()

		rental := &domain.Rental{ID: 7, EquipmentID: 5, PatronID: 10, Status: domain.RentalStatusActive, CheckedOutCondition: domain.ConditionExcellent}
		eq := &domain.Equipment{ID: 5, Condition: domain.ConditionExcellent, IsAvailable: false}
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(rental, nil)
		rentalRepo.On("Update", mock.Anything, rental).Return(nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(eq, nil)
		equipmentRepo.On("Update", mock.Anything, eq).Return(nil)
		userRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, Email: "alice@example.com"}, nil)
		emailSvc.On("SendReturnConfirmation", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		got, err := svc.CompleteRental(ctx, librarianIdentity, 7, "", "")
		require.NoError(t, err)
		assert.Equal(t, domain.ConditionExcellent, got.ReturnCondition)
		assert.Equal(t, domain.ConditionExcellent, eq.Condition)
	})

	t.Run("better return condition does not improve stored condition", func(t *testing.T) {
		svc, rentalRepo, equipmentRepo, userRepo, _, emailSvc := newRentalServiceForTest()

		rental := &domain.Rental{ID: 7, EquipmentID: 5, PatronID: 10, Status: domain.RentalStatusOverdue}
		eq := &domain.Equipment{ID: 5, Condition: domain.ConditionFair, IsAvailable: false}
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(rental, nil)
		rentalRepo.On("Update", mock.Anything, rental).Return(nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(eq, nil)
		equipmentRepo.On("Update", mock.Anything, eq).Return(nil)
		userRepo.On("GetByID", mock.Anything, int32(10)).Return(&domain.User{ID: 10, Email: "alice@example.com"}, nil)
		emailSvc.On("SendReturnConfirmation", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.CompleteRental(ctx, librarianIdentity, 7, domain.ConditionNew, "")
		require.NoError(t, err)
		assert.Equal(t, domain.ConditionFair, eq.Condition)
	})

	t.Run("rejects pending rental", func(t *testing.T) {
		svc, rentalRepo, _, _, _, _ := newRentalServiceForTest()
		rentalRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Rental{ID: 7, Status: domain.RentalStatusPending}, nil)

		_, err := svc.CompleteRental(ctx, librarianIdentity, 7, domain.ConditionGood, "")
		var transition *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &transition)
	})

	t.Run("rejects patrons", func(t *testing.T) {
		svc, _, _, _, _, _ := newRentalServiceForTest()
		_, err := svc.CompleteRental(ctx, patronIdentity, 7, domain.ConditionGood, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestListRentals(t *testing.T) {
	ctx := context.Background()

	t.Run("librarians see everything", func(t *testing.T) {
		svc, rentalRepo, _, _, _, _ := newRentalServiceForTest()
		rentalRepo.On("ListAll", mock.Anything, domain.RentalStatusPending, int32(1), int32(20)).Return([]domain.Rental{{ID: 1}}, int32(1), nil)

		rentals, total, err := svc.ListRentals(ctx, librarianIdentity, domain.RentalStatusPending, 0, 0)
		require.NoError(t, err)
		assert.Len(t, rentals, 1)
		assert.Equal(t, int32(1), total)
	})

	t.Run("patrons see only their own", func(t *testing.T) {
		svc, rentalRepo, _, _, _, _ := newRentalServiceForTest()
		rentalRepo.On("ListByPatron", mock.Anything, int32(10), domain.RentalStatus(""), int32(2), int32(10)).Return([]domain.Rental{}, int32(0), nil)

		_, _, err := svc.ListRentals(ctx, patronIdentity, "", 2, 10)
		require.NoError(t, err)
		rentalRepo.AssertExpectations(t)
	})
}

func TestRentalCounts(t *testing.T) {
	svc, rentalRepo, _, _, _, _ := newRentalServiceForTest()
	rentalRepo.On("CountByStatus", mock.Anything).Return(&domain.RentalCounts{Pending: 2, Active: 5}, nil)

	counts, err := svc.RentalCounts(context.Background(), librarianIdentity)
	require.NoError(t, err)
	assert.Equal(t, int32(2), counts.Pending)

	_, err = svc.RentalCounts(context.Background(), patronIdentity)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
