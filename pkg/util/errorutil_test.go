package util

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/meals-service/internal/persistence"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"passes through domain errors", NewDuplicateUser(), "DUPLICATE_USER", http.StatusConflict},
		{"no documents maps to not found", mongo.ErrNoDocuments, "NOT_FOUND", http.StatusNotFound},
		{"deadline maps to store unavailable", context.DeadlineExceeded, "STORE_UNAVAILABLE", http.StatusServiceUnavailable},
		{"disconnected store maps to store unavailable", persistence.ErrNotConnected, "STORE_UNAVAILABLE", http.StatusServiceUnavailable},
		{"fiber errors keep their status", fiber.ErrNotFound, "HTTP_ERROR", http.StatusNotFound},
		{"fiber timeout keeps its status", fiber.ErrRequestTimeout, "HTTP_ERROR", http.StatusRequestTimeout},
		{"unknown errors map to internal", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}

	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewStoreUnavailable(inner)
	assert.ErrorIs(t, err, inner)
}

func TestTaxonomyStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToDomainError(NewValidationError("bad", nil)).HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, ToDomainError(NewUnauthenticated("no session")).HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, ToDomainError(NewInvalidCredentials()).HTTPStatus)
	assert.Equal(t, http.StatusNotFound, ToDomainError(NewUserNotFound("ghost")).HTTPStatus)
	assert.Equal(t, http.StatusTooManyRequests, ToDomainError(NewTooManyAttempts()).HTTPStatus)
}
