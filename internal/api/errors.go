package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/apperror"
)

// StatusFor maps an error kind to its HTTP status. NotVisible shares 404 with
// NotFound so that private recipe ids cannot be probed.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.Unauthorized:
		return http.StatusUnauthorized
	case apperror.Forbidden:
		return http.StatusForbidden
	case apperror.NotVisible, apperror.NotFound:
		return http.StatusNotFound
	case apperror.Conflict:
		return http.StatusConflict
	case apperror.Validation,
		apperror.EmptySubmission,
		apperror.MissingField,
		apperror.OutOfWeekRange,
		apperror.RecipeNotFound,
		apperror.DuplicateSlot,
		apperror.DayWithoutRecipe,
		apperror.PastWeek:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error", "kind"} plus the offending value
func respondError(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok || appErr.Kind == apperror.Internal {
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "kind": apperror.Internal})
		return
	}

	kind := appErr.Kind
	message := appErr.Error()
	if kind == apperror.NotVisible {
		kind = apperror.NotFound
		message = "recipe not found"
	}

	body := gin.H{"error": message, "kind": kind}
	switch appErr.Kind {
	case apperror.Validation:
		body["field"] = appErr.Field
	case apperror.MissingField:
		body["field"] = appErr.Field
		body["index"] = appErr.Index
	case apperror.OutOfWeekRange, apperror.DayWithoutRecipe, apperror.PastWeek:
		body["day"] = appErr.Day.Format(time.DateOnly)
	case apperror.DuplicateSlot:
		body["day"] = appErr.Day.Format(time.DateOnly)
		body["slot"] = appErr.Slot
	case apperror.RecipeNotFound:
		body["recipe_id"] = appErr.RecipeID
	case apperror.NotFound:
		if len(appErr.IDs) > 0 {
			body["ids"] = appErr.IDs
		}
	}
	c.JSON(StatusFor(appErr.Kind), body)
}

// badRequest reports a body or parameter that could not be decoded
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "kind": apperror.Validation})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
