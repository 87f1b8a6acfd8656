package types

import "strings"

// Identity is the authenticated requester of an operation. The zero value is
// a guest: no account, no username.
type Identity struct {
	AccountID uint
	Username  string
}

// Guest is the identity of an unauthenticated request
var Guest = Identity{}

// IsGuest reports whether no account is attached
func (i Identity) IsGuest() bool {
	return strings.TrimSpace(i.Username) == ""
}

// Matches compares the identity with an owner marker, ignoring case
func (i Identity) Matches(owner string) bool {
	if i.IsGuest() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(i.Username), strings.TrimSpace(owner))
}
