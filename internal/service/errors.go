package service

import (
	"errors"

	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/store"
)

// storeError converts a store failure into an application error. Errors that
// already carry a kind pass through.
func storeError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return apperror.NewNotFound(notFound)
	case errors.Is(err, store.ErrDuplicate):
		return apperror.NewConflict("record already exists", err)
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.NewInternal("storage failure", err)
}
