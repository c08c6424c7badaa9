package person

import "github.com/google/uuid"

// IdentifierKind discriminates the shapes an incoming identifier can take.
type IdentifierKind int

const (
	// ByInternalKey means the identifier parsed as an internal record key.
	ByInternalKey IdentifierKind = iota
	// ByRoleOrLoginID means the identifier is matched against the
	// human-readable role id or the login id.
	ByRoleOrLoginID
)

// Identifier is the normalized form of a loosely-typed person identifier.
// Callers accept internal keys, role ids (PAT-123456) and login ids through
// one field; ParseIdentifier decides the lookup strategy up front so the
// resolution order is an explicit contract rather than a chain of loose
// fallbacks.
type Identifier struct {
	Kind IdentifierKind
	Key  uuid.UUID
	Text string
}

// ParseIdentifier classifies a raw identifier string. Anything that is
// structurally a valid internal key resolves ByInternalKey first; everything
// else goes straight to the role-id/login-id lookup.
func ParseIdentifier(raw string) Identifier {
	if key, err := uuid.Parse(raw); err == nil {
		return Identifier{Kind: ByInternalKey, Key: key, Text: raw}
	}
	return Identifier{Kind: ByRoleOrLoginID, Text: raw}
}
