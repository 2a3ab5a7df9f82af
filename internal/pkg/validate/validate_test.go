package validate

import (
	"testing"

	"github.com/go-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.True(t, Email("ann@x.com"))
	assert.False(t, Email(""))
	assert.False(t, Email("not-an-email"))
	assert.False(t, Email("ann@"))
}

func TestStruct(t *testing.T) {
	ok := domain.LoginRequest{Email: "ann@x.com", Password: "Secret1!"}
	assert.NoError(t, Struct(&ok))

	missing := domain.LoginRequest{Email: "ann@x.com"}
	err := Struct(&missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Password")

	short := domain.RegisterRequest{Name: "Ann", LastName: "Lee", Email: "ann@x.com", Password: "short"}
	assert.Error(t, Struct(&short))
}
