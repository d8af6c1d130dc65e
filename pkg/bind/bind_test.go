package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/pkg/bind"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func request(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
}

func TestJSONValid(t *testing.T) {
	var dest loginBody
	errs, err := bind.JSON(request(`{"email":"a@b.co","password":"secret1"}`), &dest)

	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, "a@b.co", dest.Email)
}

func TestJSONValidationErrors(t *testing.T) {
	var dest loginBody
	errs, err := bind.JSON(request(`{"email":"nope","password":"123"}`), &dest)

	require.NoError(t, err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestJSONMalformed(t *testing.T) {
	var dest loginBody

	_, err := bind.JSON(request(`{"email":`), &dest)
	assert.Error(t, err)

	_, err = bind.JSON(request(``), &dest)
	assert.ErrorIs(t, err, bind.ErrEmptyBody)

	_, err = bind.JSON(request(`{"email":"a@b.co","password":"secret1","admin":true}`), &dest)
	assert.Error(t, err)
}
