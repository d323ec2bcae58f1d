package zerror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

var errNotFound = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")

func TestZError(t *testing.T) {
	t.Run("Should keep status and code when the message changes", func(t *testing.T) {
		err := errNotFound.WithMsgf("Product with id %d not found", 7)

		assert.Equal(t, "Product with id 7 not found", err.Msg())
		assert.Equal(t, zerror.StatusNotFound, err.Status())
		assert.Equal(t, "PRODUCT_NOT_FOUND", err.Code())
		assert.Equal(t, "product not found", errNotFound.Msg())
	})

	t.Run("Should match predefined errors through wrapping", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", errNotFound.WithMsg("other message"))

		assert.ErrorIs(t, err, errNotFound)
		assert.NotErrorIs(t, err, zerror.NewNotFound("IMAGE_NOT_FOUND", "image not found"))
		assert.NotErrorIs(t, err, zerror.NewConflict("PRODUCT_NOT_FOUND", "product not found"))
	})

	t.Run("Should expose the parent", func(t *testing.T) {
		parent := errors.New("no rows")
		err := errNotFound.WrapParent(parent)

		assert.ErrorIs(t, err, parent)
		assert.Equal(t, parent, err.Parent())
		assert.Contains(t, err.Error(), "no rows")
	})

	t.Run("Should ignore a nil parent", func(t *testing.T) {
		assert.Nil(t, errNotFound.WrapParent(nil).Parent())
	})
}
