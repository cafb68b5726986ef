package model

// MatchingAlgorithm selects how the service auto-assigns a correspondent,
// document type or tag to incoming documents.
type MatchingAlgorithm int

// Matching algorithms understood by the service.
const (
	MatchNone    MatchingAlgorithm = 0
	MatchAny     MatchingAlgorithm = 1
	MatchAll     MatchingAlgorithm = 2
	MatchLiteral MatchingAlgorithm = 3
	MatchRegex   MatchingAlgorithm = 4
	MatchFuzzy   MatchingAlgorithm = 5
	MatchAuto    MatchingAlgorithm = 6
)

// DefaultMatching is used for every object the CLI creates.
const DefaultMatching = MatchAuto

// PermissionSet lists the users and groups granted one permission.
type PermissionSet struct {
	Users  []int `json:"users"`
	Groups []int `json:"groups"`
}

// Permissions is the per-object permission block.
type Permissions struct {
	View   PermissionSet `json:"view"`
	Change PermissionSet `json:"change"`
}

// Matchable holds the fields shared by correspondents, document types and
// tags.
type Matchable struct {
	ID                int                `json:"id"`
	Slug              string             `json:"slug"`
	Name              string             `json:"name"`
	Match             string             `json:"match,omitempty"`
	MatchingAlgorithm *MatchingAlgorithm `json:"matching_algorithm,omitempty"`
	IsInsensitive     *bool              `json:"is_insensitive,omitempty"`
	DocumentCount     *int               `json:"document_count,omitempty"`
	Owner             *int               `json:"owner,omitempty"`
	Permissions       *Permissions       `json:"permissions,omitempty"`
	UserCanChange     *bool              `json:"user_can_change,omitempty"`
}

// NamedCreate is the payload for creating a correspondent or document type.
type NamedCreate struct {
	Name              string            `json:"name"`
	MatchingAlgorithm MatchingAlgorithm `json:"matching_algorithm"`
}

// NewNamedCreate returns a create payload using the default matching algorithm.
func NewNamedCreate(name string) NamedCreate {
	return NamedCreate{Name: name, MatchingAlgorithm: DefaultMatching}
}

// NamedUpdate is the payload for renaming a correspondent or document type.
type NamedUpdate struct {
	Name *string `json:"name,omitempty"`
}
