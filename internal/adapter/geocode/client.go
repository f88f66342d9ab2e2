package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/polkiloo/procurement/internal/domain/model"
)

// Geocoder resolves coordinates to a postal address.
type Geocoder interface {
	Reverse(ctx context.Context, point model.GeoPoint) (*model.Address, error)
}

// HTTPClient implements Geocoder against a Nominatim compatible API.
type HTTPClient struct {
	baseURL    *url.URL
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the reverse lookup JSON payload.
type response struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road     string `json:"road"`
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		Country  string `json:"country"`
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// NewHTTPClient creates a reverse geocoding client. Each call is bounded by timeout.
func NewHTTPClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse geocoder url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("geocoder url must be absolute")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		baseURL:    parsed,
		userAgent:  userAgent,
		timeout:    timeout,
		logger:     logger,
		httpClient: &http.Client{},
	}, nil
}

// Reverse looks up the address at point.
func (c *HTTPClient) Reverse(ctx context.Context, point model.GeoPoint) (*model.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/reverse")
	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(point.Longitude, 'f', -1, 64))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("reverse geocoding failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("geocoder error: %s", resp.Status)
	}

	var data response
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}

	city := data.Address.City
	if city == "" {
		city = data.Address.Town
	}
	if city == "" {
		city = data.Address.Village
	}
	return &model.Address{
		FullAddress: data.DisplayName,
		Street:      data.Address.Road,
		City:        city,
		Country:     data.Address.Country,
		PostalCode:  data.Address.Postcode,
	}, nil
}
