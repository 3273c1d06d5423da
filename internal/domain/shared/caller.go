package shared

import "strings"

// RequireCaller fails closed when no caller identity was resolved.
func RequireCaller(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUnauthenticated
	}
	return nil
}

// EnsureOwner verifies that a fetched row belongs to the caller. A mismatch is
// reported as ErrNotFound so the row's existence is not leaked.
func EnsureOwner(ownerID, callerID string) error {
	if err := RequireCaller(callerID); err != nil {
		return err
	}
	if ownerID != callerID {
		return ErrNotFound
	}
	return nil
}

// Owned is implemented by every user-scoped entity
type Owned interface {
	OwnerID() string
}
