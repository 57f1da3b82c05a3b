// internal/domain/models/structure.go
package models

// Structure is a user-authored geo-tagged object embedded in a group.
// User records the authoring member's id and is immutable; it is used
// for ownership checks and keeps holding even after the author leaves
// the group. Struct is an opaque payload (typically a GeoJSON feature
// collection) that is only ever replaced as a whole. Fields is an open
// key/value mapping whose keys are individually addressable.
type Structure struct {
	ID     string         `bson:"id" json:"id"`
	User   string         `bson:"user" json:"user"`
	Struct any            `bson:"struct" json:"struct"`
	Fields map[string]any `bson:"fields,omitempty" json:"fields,omitempty"`
}
