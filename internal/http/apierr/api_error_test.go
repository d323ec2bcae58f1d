package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
)

func TestNew(t *testing.T) {
	t.Run("Should map application errors by status", func(t *testing.T) {
		cases := map[error]int{
			apperr.ProductNotFoundErr:   http.StatusNotFound,
			apperr.ProductConflictErr:   http.StatusConflict,
			apperr.ValidationErr:        http.StatusBadRequest,
			apperr.ImagesImmutableErr:   http.StatusBadRequest,
			apperr.InvalidPaginationErr: http.StatusBadRequest,
			apperr.TooManyRequestsErr:   http.StatusTooManyRequests,
			apperr.InternalErr:          http.StatusInternalServerError,
		}
		for in, status := range cases {
			res := apierr.New(fmt.Errorf("wrapped: %w", in))
			assert.Equal(t, status, res.StatusCode, in.Error())
		}
	})

	t.Run("Should keep the message of the error", func(t *testing.T) {
		res := apierr.New(apperr.ProductNotFoundErr.WithMsg("Product with term tee not found"))

		assert.Equal(t, apperr.ProductNotFoundCode, res.Code)
		assert.Equal(t, "Product with term tee not found", res.Message)
	})

	t.Run("Should list field errors", func(t *testing.T) {
		v, err := validator.NewDefaultValidator()
		require.NoError(t, err)

		type body struct {
			Title string `json:"title" validate:"required"`
		}
		res := apierr.New(v.Validate(body{}))

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		require.NotNil(t, res.Details)
		require.Len(t, *res.Details, 1)
		assert.Equal(t, "Title", (*res.Details)[0].Field)
		assert.Equal(t, "field is required", (*res.Details)[0].Message)
	})

	t.Run("Should hide unknown errors", func(t *testing.T) {
		res := apierr.New(errors.New("pq: connection refused"))

		assert.Equal(t, apierr.InternalServerErr, res)
		assert.NotContains(t, res.Message, "connection refused")
	})
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, apierr.Write(rec, apierr.New(apperr.ProductConflictErr.WithMsg("Key (slug)=(tee) already exists."))))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":"PRODUCT_CONFLICT","message":"Key (slug)=(tee) already exists."}`, rec.Body.String())
}
