package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skirentals-backend/internal/domain"
)

func newEquipmentServiceForTest() (*equipmentService, *MockEquipmentRepo) {
	equipmentRepo := new(MockEquipmentRepo)
	svc := NewEquipmentService(equipmentRepo).(*equipmentService)
	return svc, equipmentRepo
}

func validSki() *domain.Equipment {
	return &domain.Equipment{
		Type: domain.EquipmentTypeSki, Subtype: domain.SkiTypeAllMountain,
		Brand: "Rossignol", Model: "Experience 88", Size: "175",
		DailyRateCents: 5000,
	}
}

func TestAddEquipment(t *testing.T) {
	ctx := context.Background()

	t.Run("librarian adds a ski", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		equipmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Equipment")).Return(nil)

		eq, err := svc.AddEquipment(ctx, librarianIdentity, validSki())
		require.NoError(t, err)
		assert.NotEmpty(t, eq.EquipmentID)
		assert.Equal(t, domain.ConditionGood, eq.Condition) // default when unset
		assert.True(t, eq.IsAvailable)
		assert.Equal(t, domain.SkiTypeAllMountain, eq.Subtype)
	})

	t.Run("subtype is cleared on non-ski equipment", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		equipmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Equipment")).Return(nil)

		eq := validSki()
		eq.Type = domain.EquipmentTypeSnowboard
		eq.Size = "155"
		got, err := svc.AddEquipment(ctx, librarianIdentity, eq)
		require.NoError(t, err)
		assert.Empty(t, got.Subtype)
	})

	t.Run("patrons cannot add equipment", func(t *testing.T) {
		svc, _ := newEquipmentServiceForTest()
		_, err := svc.AddEquipment(ctx, patronIdentity, validSki())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("size is validated against the type", func(t *testing.T) {
		svc, _ := newEquipmentServiceForTest()
		eq := validSki()
		eq.Size = "250"
		_, err := svc.AddEquipment(ctx, librarianIdentity, eq)
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "size", validation.Field)
	})

	t.Run("daily rate must be positive", func(t *testing.T) {
		svc, _ := newEquipmentServiceForTest()
		eq := validSki()
		eq.DailyRateCents = 0
		_, err := svc.AddEquipment(ctx, librarianIdentity, eq)
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "daily_rate", validation.Field)
	})
}

func TestUpdateEquipment(t *testing.T) {
	ctx := context.Background()

	t.Run("derived fields survive an update", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		existing := validSki()
		existing.ID = 5
		existing.EquipmentID = "abc-123"
		existing.TotalRentals = 12
		existing.AverageRating = 4.5
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(existing, nil)
		equipmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Equipment")).Return(nil)

		update := validSki()
		update.ID = 5
		update.Brand = "Volkl"
		got, err := svc.UpdateEquipment(ctx, librarianIdentity, update)
		require.NoError(t, err)
		assert.Equal(t, "abc-123", got.EquipmentID)
		assert.Equal(t, int32(12), got.TotalRentals)
		assert.Equal(t, 4.5, got.AverageRating)
		assert.Equal(t, "Volkl", got.Brand)
	})

	t.Run("lifecycle flags survive an update", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		existing := validSki()
		existing.ID = 5
		existing.IsAvailable = true
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(existing, nil)
		equipmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Equipment")).Return(nil)

		// A decoded edit form carries zero values for both flags.
		update := validSki()
		update.ID = 5
		got, err := svc.UpdateEquipment(ctx, librarianIdentity, update)
		require.NoError(t, err)
		assert.True(t, got.IsAvailable)
		assert.False(t, got.IsDeleted)
	})

	t.Run("an edit does not resurrect a soft-deleted item", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		existing := validSki()
		existing.ID = 5
		existing.IsDeleted = true
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(existing, nil)
		equipmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Equipment")).Return(nil)

		update := validSki()
		update.ID = 5
		got, err := svc.UpdateEquipment(ctx, librarianIdentity, update)
		require.NoError(t, err)
		assert.True(t, got.IsDeleted)
	})

	t.Run("patrons cannot update", func(t *testing.T) {
		svc, _ := newEquipmentServiceForTest()
		_, err := svc.UpdateEquipment(ctx, patronIdentity, validSki())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestDeleteEquipment(t *testing.T) {
	ctx := context.Background()

	t.Run("soft delete by default", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(validSki(), nil)
		equipmentRepo.On("SoftDelete", mock.Anything, int32(5)).Return(nil)

		require.NoError(t, svc.DeleteEquipment(ctx, librarianIdentity, 5, false))
		equipmentRepo.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
	})

	t.Run("hard delete when asked", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(validSki(), nil)
		equipmentRepo.On("HardDelete", mock.Anything, int32(5)).Return(nil)

		require.NoError(t, svc.DeleteEquipment(ctx, librarianIdentity, 5, true))
	})

	t.Run("patrons cannot delete", func(t *testing.T) {
		svc, _ := newEquipmentServiceForTest()
		err := svc.DeleteEquipment(ctx, patronIdentity, 5, false)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestGetEquipment(t *testing.T) {
	ctx := context.Background()

	t.Run("hidden items read as not found", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		equipmentRepo.On("IsVisible", mock.Anything, patronIdentity, int32(5)).Return(false, nil)

		_, err := svc.GetEquipment(ctx, patronIdentity, 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("soft-deleted items stay visible to librarians", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		deleted := validSki()
		deleted.IsDeleted = true
		equipmentRepo.On("IsVisible", mock.Anything, librarianIdentity, int32(5)).Return(true, nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(deleted, nil)

		got, err := svc.GetEquipment(ctx, librarianIdentity, 5)
		require.NoError(t, err)
		assert.True(t, got.IsDeleted)
	})

	t.Run("soft-deleted items are hidden from patrons", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		deleted := validSki()
		deleted.IsDeleted = true
		equipmentRepo.On("IsVisible", mock.Anything, patronIdentity, int32(5)).Return(true, nil)
		equipmentRepo.On("GetByID", mock.Anything, int32(5)).Return(deleted, nil)

		_, err := svc.GetEquipment(ctx, patronIdentity, 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListEquipmentClampsPaging(t *testing.T) {
	svc, equipmentRepo := newEquipmentServiceForTest()
	equipmentRepo.On("ListVisible", mock.Anything, patronIdentity, int32(1), int32(20)).Return([]domain.Equipment{}, int32(0), nil)

	_, _, err := svc.ListEquipment(context.Background(), patronIdentity, -3, 5000)
	require.NoError(t, err)
	equipmentRepo.AssertExpectations(t)
}

func TestDeleteImage(t *testing.T) {
	ctx := context.Background()

	t.Run("image must belong to the equipment", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		equipmentRepo.On("GetImages", mock.Anything, int32(5)).Return([]domain.EquipmentImage{
			{ID: 2, EquipmentID: 5},
		}, nil)

		err := svc.DeleteImage(ctx, librarianIdentity, 5, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("matching image is deleted", func(t *testing.T) {
		svc, equipmentRepo := newEquipmentServiceForTest()
		equipmentRepo.On("GetImages", mock.Anything, int32(5)).Return([]domain.EquipmentImage{
			{ID: 2, EquipmentID: 5},
		}, nil)
		equipmentRepo.On("DeleteImage", mock.Anything, int32(2)).Return(nil)

		assert.NoError(t, svc.DeleteImage(ctx, librarianIdentity, 5, 2))
	})
}
