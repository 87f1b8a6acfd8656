// Package apperror defines the typed errors returned by the recipe and
// meal-plan services. Every rule violation carries a Kind that callers
// inspect with KindOf or Is instead of matching on message text.
package apperror

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind identifies the category of an application error
type Kind string

const (
	Internal     Kind = "internal"
	Unauthorized Kind = "unauthorized"
	Forbidden    Kind = "forbidden"
	NotVisible   Kind = "not_visible"
	NotFound     Kind = "not_found"
	Validation   Kind = "validation"
	Conflict     Kind = "conflict"

	// Meal-plan specific kinds
	EmptySubmission  Kind = "empty_submission"
	MissingField     Kind = "missing_field"
	OutOfWeekRange   Kind = "out_of_week_range"
	RecipeNotFound   Kind = "recipe_not_found"
	DuplicateSlot    Kind = "duplicate_slot"
	DayWithoutRecipe Kind = "day_without_recipe"
	PastWeek         Kind = "past_week"
)

// Error is the concrete error type for all application errors.
// Only the fields relevant to Kind are populated.
type Error struct {
	Kind     Kind
	Message  string
	Field    string
	Index    int
	Day      time.Time
	Slot     string
	RecipeID uint
	IDs      []uint
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, &Error{Kind: NotFound}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or Internal
// for any other non-nil error.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As extracts the *Error from err's chain
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: Unauthorized, Message: message}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: Forbidden, Message: message}
}

func NewNotVisible(id uint) *Error {
	return &Error{Kind: NotVisible, Message: fmt.Sprintf("recipe %d is not visible", id), RecipeID: id}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewMissingIDs reports a batch of ids that could not be found
func NewMissingIDs(what string, ids []uint) *Error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return &Error{
		Kind:    NotFound,
		Message: fmt.Sprintf("%s not found: [%s]", what, strings.Join(parts, ", ")),
		IDs:     ids,
	}
}

// NewValidation names the first offending field
func NewValidation(field, message string) *Error {
	return &Error{Kind: Validation, Field: field, Message: fmt.Sprintf("%s: %s", field, message)}
}

func NewConflict(message string, err error) *Error {
	return &Error{Kind: Conflict, Message: message, Err: err}
}

// NewInternal wraps an infrastructure failure
func NewInternal(message string, err error) *Error {
	return &Error{Kind: Internal, Message: message, Err: err}
}

func NewEmptySubmission() *Error {
	return &Error{Kind: EmptySubmission, Message: "entries must not be empty"}
}

func NewMissingField(field string, index int) *Error {
	return &Error{
		Kind:    MissingField,
		Field:   field,
		Index:   index,
		Message: fmt.Sprintf("entry %d: %s is missing or invalid", index, field),
	}
}

func NewOutOfWeekRange(day, weekStart time.Time) *Error {
	return &Error{
		Kind: OutOfWeekRange,
		Day:  day,
		Message: fmt.Sprintf("entry day %s is outside the week %s to %s",
			day.Format(time.DateOnly), weekStart.Format(time.DateOnly), weekStart.AddDate(0, 0, 6).Format(time.DateOnly)),
	}
}

func NewRecipeNotFound(id uint) *Error {
	return &Error{Kind: RecipeNotFound, RecipeID: id, Message: fmt.Sprintf("recipe not found: %d", id)}
}

func NewDuplicateSlot(day time.Time, slot string) *Error {
	return &Error{
		Kind:    DuplicateSlot,
		Day:     day,
		Slot:    slot,
		Message: fmt.Sprintf("slot %s on %s is assigned more than once", slot, day.Format(time.DateOnly)),
	}
}

func NewDayWithoutRecipe(day time.Time) *Error {
	return &Error{
		Kind:    DayWithoutRecipe,
		Day:     day,
		Message: fmt.Sprintf("choose at least one recipe for %s", day.Format(time.DateOnly)),
	}
}

func NewPastWeek(weekStart time.Time) *Error {
	return &Error{
		Kind:    PastWeek,
		Day:     weekStart,
		Message: fmt.Sprintf("cannot create a plan for the past week starting %s", weekStart.Format(time.DateOnly)),
	}
}
