// internal/domain/models/location.go
package models

// Geolocation is a per-user location sub-document. When IsHidden is
// true the stored position is zeroed and must not be disclosed.
type Geolocation struct {
	IsHidden bool        `bson:"isHidden" json:"isHidden"`
	Position GeoPosition `bson:"position" json:"position"`
}

// GeoPosition is a latitude/longitude pair in the stored (and response)
// shape.
type GeoPosition struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lon float64 `bson:"lon" json:"lon"`
}

// UserGeolocation pairs a user id with their visible position, as
// returned by the location listing endpoint.
type UserGeolocation struct {
	User     string      `bson:"user" json:"user"`
	Position GeoPosition `bson:"position" json:"position"`
}

// GeoPositionInput is the request shape for position updates.
type GeoPositionInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Position converts the request shape to the stored shape.
func (in GeoPositionInput) Position() GeoPosition {
	return GeoPosition{Lat: in.Latitude, Lon: in.Longitude}
}

// Valid reports whether the coordinates are in range.
func (in GeoPositionInput) Valid() bool {
	return in.Latitude >= -90 && in.Latitude <= 90 &&
		in.Longitude >= -180 && in.Longitude <= 180
}
