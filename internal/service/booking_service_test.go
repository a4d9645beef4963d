package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "herohome/internal/errors"
	"herohome/internal/model"
)

func TestBookingService_Create(t *testing.T) {
	serviceID := primitive.NewObjectID()

	mockRepo := new(MockBookingRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
		return b.ServiceID == serviceID &&
			b.UserEmail == "u@example.com" &&
			b.ProviderEmail == "p@example.com" &&
			b.Price == "49.99" &&
			b.Extra["serviceName"] == "Plumbing" &&
			!b.CreatedAt.IsZero()
	})).Return(&model.InsertResult{Acknowledged: true, InsertedID: primitive.NewObjectID()}, nil)

	res, err := NewBookingService(mockRepo).Create(context.Background(), model.Fields{
		"serviceId":     serviceID.Hex(),
		"serviceName":   "Plumbing",
		"userEmail":     "u@example.com",
		"providerEmail": "p@example.com",
		"price":         "49.99",
	})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	mockRepo.AssertExpectations(t)
}

func TestBookingService_CreateRejectsMalformedServiceID(t *testing.T) {
	for _, serviceID := range []interface{}{"abc", "", 12.0, nil, "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		mockRepo := new(MockBookingRepository)

		_, err := NewBookingService(mockRepo).Create(context.Background(), model.Fields{"serviceId": serviceID})
		assert.ErrorIs(t, err, apperrors.ErrInvalidID, "serviceId %v", serviceID)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestBookingService_Delete(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("existing", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("Delete", mock.Anything, id).Return(&model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil)

		res, err := NewBookingService(mockRepo).Delete(context.Background(), id.Hex())
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.DeletedCount)
	})

	t.Run("nonexistent", func(t *testing.T) {
		mockRepo := new(MockBookingRepository)
		mockRepo.On("Delete", mock.Anything, id).Return(nil, apperrors.ErrBookingNotFound)

		_, err := NewBookingService(mockRepo).Delete(context.Background(), id.Hex())
		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	})
}
