package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/openpos/backend/internal/application/partner"
	"github.com/openpos/backend/internal/domain/partner"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// === Mock Repositories ===

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newCustomerTestServer(repo *MockCustomerRepository) *gin.Engine {
	engine := gin.New()
	handler := NewCustomerHandler(partnerapp.NewCustomerService(repo))
	api := engine.Group("/api/v1")
	handler.RegisterRoutes(api)
	return engine
}

func TestCustomerHandlerCreate(t *testing.T) {
	t.Run("creates customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)
		engine := newCustomerTestServer(repo)

		body := `{"name": "Acme Traders", "email": "acme@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		engine.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.True(t, resp.Success)
		repo.AssertExpectations(t)
	})

	t.Run("missing name fails binding with 400", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		engine := newCustomerTestServer(repo)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		engine.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("invalid email rejected by domain with 400", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		engine := newCustomerTestServer(repo)

		body := `{"name": "Acme Traders", "email": "not-an-email"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		engine.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestCustomerHandlerGetByID(t *testing.T) {
	t.Run("returns 404 for unknown customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		customerID := uuid.New()
		repo.On("FindByID", mock.Anything, customerID).Return(nil, shared.ErrNotFound)
		engine := newCustomerTestServer(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID.String(), nil)
		recorder := httptest.NewRecorder()

		engine.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("returns 400 for malformed id", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		engine := newCustomerTestServer(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/not-a-uuid", nil)
		recorder := httptest.NewRecorder()

		engine.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCustomerHandlerList(t *testing.T) {
	t.Run("returns items with pagination meta", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		customer, err := partner.NewCustomer("Acme Traders", partner.ContactDetails{})
		require.NoError(t, err)
		repo.On("FindAll", mock.Anything, mock.Anything).Return([]partner.Customer{*customer}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
		engine := newCustomerTestServer(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers?search=Acme", nil)
		recorder := httptest.NewRecorder()

		engine.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeResponse(t, recorder)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})
}
