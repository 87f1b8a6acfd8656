package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

func strPtr(s string) *string { return &s }

var requesters = []types.Identity{
	types.Guest,
	{AccountID: 1, Username: "anna"},
	{AccountID: 2, Username: "ANNA"},
	{AccountID: 3, Username: "bert"},
	{AccountID: 4, Username: "admin"},
}

func TestEvaluatePublicRecipe(t *testing.T) {
	for _, owner := range []*string{nil, strPtr(""), strPtr("   ")} {
		for _, r := range requesters {
			access := service.Evaluate(owner, r)
			assert.Equal(t, service.AccessPublicReadOnly, access, "requester %q", r.Username)
			assert.True(t, access.CanRead())
			assert.False(t, access.CanModify(), "public recipes must never be modifiable")
		}
	}
}

func TestEvaluateOwnedRecipe(t *testing.T) {
	tests := []struct {
		name      string
		owner     string
		requester types.Identity
		want      service.Access
	}{
		{"owner", "anna", types.Identity{AccountID: 1, Username: "anna"}, service.AccessOwned},
		{"owner different case", "Anna", types.Identity{AccountID: 1, Username: "aNNa"}, service.AccessOwned},
		{"other account", "anna", types.Identity{AccountID: 3, Username: "bert"}, service.AccessForbidden},
		{"guest", "anna", types.Guest, service.AccessForbidden},
		{"admin has no special rights", "anna", types.Identity{AccountID: 4, Username: "admin"}, service.AccessForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := service.Evaluate(strPtr(tt.owner), tt.requester)
			assert.Equal(t, tt.want, access)
			assert.Equal(t, tt.want == service.AccessOwned, access.CanRead())
			assert.Equal(t, tt.want == service.AccessOwned, access.CanModify())
		})
	}
}

func TestAccessString(t *testing.T) {
	assert.Equal(t, "forbidden", service.AccessForbidden.String())
	assert.Equal(t, "public_read_only", service.AccessPublicReadOnly.String())
	assert.Equal(t, "owned", service.AccessOwned.String())
}
