package postgresql

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/backend/foundation/web"
)

func TestValidateStruct(t *testing.T) {
	type request struct {
		Name   *string
		Amount *float64
		ID     int
	}

	var d Database

	name := "Engineering"
	t.Run("all present", func(t *testing.T) {
		amount := 1.5
		err := d.ValidateStruct(&request{Name: &name, Amount: &amount, ID: 3}, "Name", "Amount", "ID")
		assert.NoError(t, err)
	})

	t.Run("missing pointer and zero value", func(t *testing.T) {
		err := d.ValidateStruct(&request{Name: &name}, "Name", "Amount", "ID")
		require.Error(t, err)

		webErr := web.GetRequestError(err)
		require.NotNil(t, webErr)
		assert.Equal(t, http.StatusBadRequest, webErr.Status)
		assert.Len(t, webErr.Fields, 2)
	})

	t.Run("comma joined names", func(t *testing.T) {
		err := d.ValidateStruct(&request{}, "Name, Amount")
		require.Error(t, err)
		assert.Len(t, web.GetRequestError(err).Fields, 2)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("duplicate key value")))
}
