// internal/domain/models/group.go
package models

// Group is the root aggregate: one document per group, with members and
// map structures embedded. Users and structures are never replaced
// wholesale — all mutation goes through single-element push/pull/patch
// in the stores, because the document may be large and concurrently
// modified by several members.
type Group struct {
	ID         string      `bson:"id" json:"id"`
	Name       string      `bson:"name" json:"name"`
	Passcode   string      `bson:"passcode,omitempty" json:"-"`
	InviteCode string      `bson:"inviteCode" json:"inviteCode"`
	Users      []User      `bson:"users" json:"-"`
	Structures []Structure `bson:"structures" json:"-"`
}

// User is embedded in exactly one group. IsAdmin is fixed at join time
// (passcode match) and never changes afterward.
//
// Location is deliberately excluded from JSON: a hidden location's
// position must never appear in a read response, so positions are only
// disclosed through the location endpoints, which honor the hidden flag.
type User struct {
	ID       string       `bson:"id" json:"id"`
	Name     string       `bson:"name" json:"name"`
	IsAdmin  bool         `bson:"isAdmin" json:"isAdmin"`
	Location *Geolocation `bson:"location,omitempty" json:"-"`
}
