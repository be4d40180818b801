package web

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestError(t *testing.T) {
	base := errors.New("record not found")
	err := NewRequestError(base, http.StatusNotFound)

	require.True(t, IsRequestError(err))

	webErr := GetRequestError(err)
	require.NotNil(t, webErr)
	assert.Equal(t, http.StatusNotFound, webErr.Status)
	assert.Equal(t, "record not found", webErr.Error())
}

func TestGetRequestErrorWrapped(t *testing.T) {
	base := NewRequestError(errors.New("boom"), http.StatusBadRequest)
	wrapped := errors.Wrap(base, "handling request")

	require.True(t, IsRequestError(wrapped))
	assert.Equal(t, http.StatusBadRequest, GetRequestError(wrapped).Status)
}

func TestIsRequestErrorPlain(t *testing.T) {
	assert.False(t, IsRequestError(errors.New("plain")))
	assert.Nil(t, GetRequestError(errors.New("plain")))
}
