package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// HTTPGeocoder calls a Nominatim-compatible /reverse endpoint.
type HTTPGeocoder struct {
	BaseURL   *url.URL
	HTTP      *http.Client
	UserAgent string
}

func NewHTTPGeocoder(baseURL string, httpClient *http.Client) (*HTTPGeocoder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid geocoder base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPGeocoder{BaseURL: u, HTTP: httpClient, UserAgent: "food-order-go"}, nil
}

type reverseResponse struct {
	Name    string `json:"name"`
	Error   string `json:"error"`
	Address struct {
		HouseNumber string `json:"house_number"`
		Road        string `json:"road"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		Postcode    string `json:"postcode"`
		Country     string `json:"country"`
	} `json:"address"`
}

func (g *HTTPGeocoder) Reverse(ctx context.Context, at Coordinates) ([]Address, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(at.Longitude, 'f', -1, 64))

	u := g.BaseURL.ResolveReference(&url.URL{Path: "reverse", RawQuery: q.Encode()})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geocoder status %d: %s", resp.StatusCode, body)
	}

	var out reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode geocoder response: %w", err)
	}
	if out.Error != "" {
		return nil, nil
	}

	city := out.Address.City
	if city == "" {
		city = out.Address.Town
	}
	if city == "" {
		city = out.Address.Village
	}

	street := out.Address.Road
	if out.Address.HouseNumber != "" && street != "" {
		street = out.Address.HouseNumber + " " + street
	}

	return []Address{{
		Name:       out.Name,
		Street:     street,
		City:       city,
		PostalCode: out.Address.Postcode,
		Country:    out.Address.Country,
	}}, nil
}
