package httpapi

import (
	"errors"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/location"
)

type resolveAddressRequest struct {
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	PermissionGranted bool    `json:"permissionGranted"`
}

// ResolveAddress turns the device position into a delivery address. On a
// denied permission the app falls back to manual entry.
func (h *Handler) ResolveAddress(w http.ResponseWriter, r *http.Request) {
	var req resolveAddressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	device := location.Reported{
		Coordinates: location.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude},
		Granted:     req.PermissionGranted,
	}
	svc := location.Service{Permissions: device, Positions: device, Geocoder: h.geocoder}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	addr, err := svc.CurrentAddress(ctx)
	switch {
	case errors.Is(err, location.ErrPermissionDenied):
		writeError(w, r, http.StatusForbidden, apiError{
			Title: "Permission Denied",
			Error: "Permission to access location was denied. Please enter your address manually.",
		})
	case errors.Is(err, location.ErrAddressUnavailable):
		writeError(w, r, http.StatusNotFound, apiError{Error: "Could not determine address from current location."})
	case err != nil:
		h.logf("resolve address: %v", err)
		writeError(w, r, http.StatusBadGateway, apiError{Error: "Could not fetch current location. Please try again or enter manually."})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"address": addr})
	}
}
