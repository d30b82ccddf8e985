// Package identity models the user scope a request operates under. A scope is
// either an authenticated user or the guest scope; persistence calls are keyed
// by the scope so guest data never mixes with account data.
package identity

const guestKey = "guest"

// Scope is a tagged identity value: Authenticated carries a user id, Guest
// does not.
type Scope struct {
	userID string
}

// Authenticated returns the scope for a signed-in user.
func Authenticated(userID string) Scope {
	return Scope{userID: userID}
}

// Guest returns the anonymous scope.
func Guest() Scope {
	return Scope{}
}

// IsGuest reports whether the scope is anonymous.
func (s Scope) IsGuest() bool {
	return s.userID == ""
}

// UserID returns the user id and whether the scope is authenticated.
func (s Scope) UserID() (string, bool) {
	return s.userID, s.userID != ""
}

// Key is the stable persistence key for the scope.
func (s Scope) Key() string {
	if s.userID == "" {
		return guestKey
	}
	return s.userID
}
