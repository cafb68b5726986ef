package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TagFields are the tag attributes common to the wire and output shapes.
type TagFields struct {
	Matchable
	Color      string `json:"color,omitempty"`
	TextColor  string `json:"text_color,omitempty"`
	IsInboxTag *bool  `json:"is_inbox_tag,omitempty"`
	Parent     *int   `json:"parent,omitempty"`
}

// TagAPI is a tag as the service returns it, with nested child tags.
type TagAPI struct {
	TagFields
	Children []TagAPI `json:"children"`
}

// Tag is the output shape of a tag: children reduced to their ids.
type Tag struct {
	TagFields
	Children []int `json:"children"`
}

// Flatten replaces the nested children with their ids.
func (t TagAPI) Flatten() Tag {
	ids := make([]int, 0, len(t.Children))
	for _, child := range t.Children {
		ids = append(ids, child.ID)
	}
	return Tag{TagFields: t.TagFields, Children: ids}
}

// TagCreate is the POST body for a new tag.
type TagCreate struct {
	Name              string            `json:"name"`
	Color             *string           `json:"color,omitempty"`
	IsInboxTag        *bool             `json:"is_inbox_tag,omitempty"`
	MatchingAlgorithm MatchingAlgorithm `json:"matching_algorithm"`
	Parent            *int              `json:"parent,omitempty"`
}

// TagUpdate is the PATCH body for a tag.
type TagUpdate struct {
	Name       *string `json:"name,omitempty"`
	Color      *string `json:"color,omitempty"`
	IsInboxTag *bool   `json:"is_inbox_tag,omitempty"`
	Parent     *int    `json:"parent,omitempty"`
}

var hexColor = regexp.MustCompile(`^#([0-9A-Fa-f]{3}){1,2}$`)

// Validate checks that the name is set and the colour is #rgb or #rrggbb.
func (c TagCreate) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Color, validation.Match(hexColor).Error("must be a hex color like #a1b2c3")),
	)
}

// Validate checks the optional colour.
func (u TagUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Color, validation.Match(hexColor).Error("must be a hex color like #a1b2c3")),
	)
}

// TagPlain renders "[id] name (N documents)".
func TagPlain(t Tag) string {
	return bracketed(t.ID, t.Name, t.DocumentCount)
}
