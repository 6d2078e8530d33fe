package domain

// Scope is a capability carried by an issued token.
type Scope string

const (
	ScopeBlogCreate Scope = "blog:create"
)

// IssuedScopes returns the fixed scope list embedded in every token.
func IssuedScopes() []Scope {
	return []Scope{ScopeBlogCreate}
}
