// Package policy names authorization outcomes explicitly instead of leaving
// them implicit in query filters. Services load the document, ask for a
// decision, then act on it.
package policy

type Decision int

const (
	// Allowed: the caller may perform the operation.
	Allowed Decision = iota
	// NotFound: the resource is missing, or exists but the caller is not
	// its owner/assignee. Both surface as 404 so existence never leaks.
	NotFound
	// Forbidden: the caller is authenticated and the resource exists, but
	// the operation is reserved for someone else (self-only endpoints).
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case NotFound:
		return "not found"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// SelfOnly gates endpoints that take a userId path parameter but only ever
// serve the authenticated user's own data.
func SelfOnly(authenticatedID, requestedID string) Decision {
	if authenticatedID == requestedID {
		return Allowed
	}
	return Forbidden
}
