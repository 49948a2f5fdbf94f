package division

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/shared"
)

// MockDivisionRepository is a mock implementation of DivisionRepository
type MockDivisionRepository struct {
	mock.Mock
}

func (m *MockDivisionRepository) FindByID(ctx context.Context, id uuid.UUID) (*division.Division, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*division.Division), args.Error(1)
}

func (m *MockDivisionRepository) FindByCode(ctx context.Context, code string) (*division.Division, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*division.Division), args.Error(1)
}

func (m *MockDivisionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]division.Division, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]division.Division), args.Error(1)
}

func (m *MockDivisionRepository) Save(ctx context.Context, d *division.Division) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDivisionRepository) SaveWithLock(ctx context.Context, d *division.Division) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDivisionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDivisionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDivisionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

var _ division.DivisionRepository = (*MockDivisionRepository)(nil)

func newCapacityReservedEvent(t *testing.T, divisionID *uuid.UUID, amount int64) *division.CapacityReservedEvent {
	t.Helper()
	r, err := division.NewStorageReservation(divisionID, "document", uuid.New(), amount)
	assert.NoError(t, err)
	return division.NewCapacityReservedEvent(r)
}

func TestCapacityAlertHandler_EventTypes(t *testing.T) {
	handler := NewCapacityAlertHandler(new(MockDivisionRepository), zap.NewNop())
	assert.Equal(t, []string{division.EventTypeCapacityReserved}, handler.EventTypes())
}

func TestCapacityAlertHandler_Handle(t *testing.T) {
	t.Run("warns when usage crosses threshold", func(t *testing.T) {
		mockRepo := new(MockDivisionRepository)
		core, logs := observer.New(zap.WarnLevel)
		handler := NewCapacityAlertHandler(mockRepo, zap.New(core))

		d, _ := division.NewDivision("Finance", "FIN", 1000)
		d.UsedCapacity = 950
		mockRepo.On("FindByID", mock.Anything, d.ID).Return(d, nil)

		err := handler.Handle(context.Background(), newCapacityReservedEvent(t, &d.ID, 100))
		assert.NoError(t, err)
		assert.Equal(t, 1, logs.Len())
		assert.Contains(t, logs.All()[0].Message, "above alert threshold")

		mockRepo.AssertExpectations(t)
	})

	t.Run("stays silent below threshold", func(t *testing.T) {
		mockRepo := new(MockDivisionRepository)
		core, logs := observer.New(zap.WarnLevel)
		handler := NewCapacityAlertHandler(mockRepo, zap.New(core))

		d, _ := division.NewDivision("Finance", "FIN", 1000)
		d.UsedCapacity = 100
		mockRepo.On("FindByID", mock.Anything, d.ID).Return(d, nil)

		err := handler.Handle(context.Background(), newCapacityReservedEvent(t, &d.ID, 100))
		assert.NoError(t, err)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("respects custom threshold", func(t *testing.T) {
		mockRepo := new(MockDivisionRepository)
		core, logs := observer.New(zap.WarnLevel)
		handler := NewCapacityAlertHandler(mockRepo, zap.New(core), WithAlertThreshold(50))

		d, _ := division.NewDivision("Finance", "FIN", 1000)
		d.UsedCapacity = 600
		mockRepo.On("FindByID", mock.Anything, d.ID).Return(d, nil)

		err := handler.Handle(context.Background(), newCapacityReservedEvent(t, &d.ID, 100))
		assert.NoError(t, err)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("skips shared pool reservations", func(t *testing.T) {
		mockRepo := new(MockDivisionRepository)
		handler := NewCapacityAlertHandler(mockRepo, zap.NewNop())

		err := handler.Handle(context.Background(), newCapacityReservedEvent(t, nil, 100))
		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "FindByID")
	})

	t.Run("rejects unexpected event type", func(t *testing.T) {
		handler := NewCapacityAlertHandler(new(MockDivisionRepository), zap.NewNop())

		d, _ := division.NewDivision("Finance", "FIN", 1000)
		err := handler.Handle(context.Background(), division.NewDivisionCreatedEvent(d))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected event type")
	})
}
