package service

import (
	"strings"

	"github.com/pageza/mealplanner/backend/internal/types"
)

// Access is what a requester may do with one recipe
type Access int

const (
	// AccessForbidden hides the recipe entirely, reads included
	AccessForbidden Access = iota
	// AccessPublicReadOnly applies to recipes without an owner
	AccessPublicReadOnly
	// AccessOwned grants read, update and delete
	AccessOwned
)

func (a Access) String() string {
	switch a {
	case AccessPublicReadOnly:
		return "public_read_only"
	case AccessOwned:
		return "owned"
	default:
		return "forbidden"
	}
}

func (a Access) CanRead() bool {
	return a == AccessPublicReadOnly || a == AccessOwned
}

// CanModify covers both update and delete. Public recipes have no owner to
// authorize either, so only AccessOwned qualifies.
func (a Access) CanModify() bool {
	return a == AccessOwned
}

// Evaluate decides the requester's access to a recipe from its owner marker.
// A nil or blank owner marks a public recipe.
func Evaluate(owner *string, requester types.Identity) Access {
	if owner == nil || strings.TrimSpace(*owner) == "" {
		return AccessPublicReadOnly
	}
	if requester.Matches(*owner) {
		return AccessOwned
	}
	return AccessForbidden
}
