package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openpos/backend/internal/domain/inventory"
	"github.com/openpos/backend/internal/domain/shared"
	"github.com/openpos/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("validation error maps to 400 with field", func(t *testing.T) {
		c, recorder := newTestContext(t)

		h.HandleError(c, shared.NewValidationError("quantity", "Quantity must be positive"))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.False(t, resp.Success)
		assert.Equal(t, shared.CodeValidation, resp.Error.Code)
		assert.Equal(t, "quantity", resp.Error.Field)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		c, recorder := newTestContext(t)

		h.HandleError(c, shared.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("empty document maps to 422", func(t *testing.T) {
		c, recorder := newTestContext(t)

		h.HandleError(c, shared.ErrEmptyDocument)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, shared.CodeEmptyDocument, resp.Error.Code)
	})

	t.Run("insufficient stock keeps shortfall detail", func(t *testing.T) {
		c, recorder := newTestContext(t)

		h.HandleError(c, &inventory.InsufficientStockError{
			Shortfalls: []inventory.Shortfall{{
				ProductID:   uuid.New(),
				ProductName: "Widget",
				Requested:   decimal.NewFromInt(10),
				Available:   decimal.NewFromInt(5),
			}},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, shared.CodeInsufficientStock, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "Widget")
	})

	t.Run("duplicate identifier maps to 409", func(t *testing.T) {
		c, recorder := newTestContext(t)

		h.HandleError(c, shared.ErrDuplicateIdentifier)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("unclassified error maps to 500", func(t *testing.T) {
		c, recorder := newTestContext(t)

		h.HandleError(c, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	})
}
