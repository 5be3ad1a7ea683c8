package util_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/customer-care/pkg/util"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, apperrors.ToDomainError(nil))
	})

	t.Run("domain errors pass through, even wrapped", func(t *testing.T) {
		original := apperrors.NewNotFound("Ticket")
		wrapped := fmt.Errorf("loading ticket: %w", original)

		got := apperrors.ToDomainError(wrapped)
		require.NotNil(t, got)
		assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
		assert.Equal(t, "Ticket not found", got.Message)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		got := apperrors.ToDomainError(errors.New("connection reset"))
		require.NotNil(t, got)
		assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
		assert.Equal(t, "internal server error", got.Message)
	})
}

func TestValidationErrorShape(t *testing.T) {
	err := apperrors.NewValidationError(map[string][]string{"title": {"title is required"}})

	got := apperrors.ToDomainError(err)
	require.NotNil(t, got)
	assert.Equal(t, http.StatusUnprocessableEntity, got.HTTPStatus)
	assert.Equal(t, "The given data was invalid.", got.Message)
	assert.Equal(t, []string{"title is required"}, got.Details["title"])
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, apperrors.IsNoRows(pgx.ErrNoRows))
	assert.True(t, apperrors.IsNoRows(fmt.Errorf("query: %w", pgx.ErrNoRows)))
	assert.False(t, apperrors.IsNoRows(errors.New("other")))
	assert.False(t, apperrors.IsNoRows(nil))
}
