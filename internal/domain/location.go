package domain

import "fmt"

// Location is a resolved place. It is produced once per request and never mutated.
type Location struct {
	Latitude    float64 `json:"latitude" yaml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude"`
	DisplayName string  `json:"display_name" yaml:"display_name"`
}

// Validate checks that the coordinates are on the WGS-84 globe.
func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90,90]", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180,180]", l.Longitude)
	}
	return nil
}
