package location

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPermissionDenied   = errors.New("location permission denied")
	ErrAddressUnavailable = errors.New("could not determine address from current location")
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is the reverse-geocoding result.
type Address struct {
	Name       string `json:"name,omitempty"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Format joins the non-empty parts with ", ".
func (a Address) Format() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Name, a.Street, a.City, a.PostalCode, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type PermissionRequester interface {
	RequestPermission(ctx context.Context) (granted bool, err error)
}

type PositionProvider interface {
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

type Geocoder interface {
	Reverse(ctx context.Context, at Coordinates) ([]Address, error)
}

// Service resolves the device position to a delivery address. Callers fall
// back to manual entry on ErrPermissionDenied.
type Service struct {
	Permissions PermissionRequester
	Positions   PositionProvider
	Geocoder    Geocoder
}

func (s Service) CurrentAddress(ctx context.Context) (string, error) {
	granted, err := s.Permissions.RequestPermission(ctx)
	if err != nil {
		return "", fmt.Errorf("request location permission: %w", err)
	}
	if !granted {
		return "", ErrPermissionDenied
	}

	pos, err := s.Positions.CurrentPosition(ctx)
	if err != nil {
		return "", fmt.Errorf("current position: %w", err)
	}

	addrs, err := s.Geocoder.Reverse(ctx, pos)
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	for _, a := range addrs {
		if formatted := a.Format(); formatted != "" {
			return formatted, nil
		}
	}
	return "", ErrAddressUnavailable
}

// Reported is a position and permission decision sent by the device.
type Reported struct {
	Coordinates
	Granted bool
}

func (r Reported) RequestPermission(context.Context) (bool, error) {
	return r.Granted, nil
}

func (r Reported) CurrentPosition(context.Context) (Coordinates, error) {
	return r.Coordinates, nil
}
