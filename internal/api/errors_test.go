package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/mealplanner/backend/internal/apperror"
)

func TestStatusFor(t *testing.T) {
	cases := map[apperror.Kind]int{
		apperror.Unauthorized:     http.StatusUnauthorized,
		apperror.Forbidden:        http.StatusForbidden,
		apperror.NotVisible:       http.StatusNotFound,
		apperror.NotFound:         http.StatusNotFound,
		apperror.Conflict:         http.StatusConflict,
		apperror.Validation:       http.StatusBadRequest,
		apperror.EmptySubmission:  http.StatusBadRequest,
		apperror.DuplicateSlot:    http.StatusBadRequest,
		apperror.DayWithoutRecipe: http.StatusBadRequest,
		apperror.PastWeek:         http.StatusBadRequest,
		apperror.Internal:         http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, StatusFor(kind), string(kind))
	}
}
