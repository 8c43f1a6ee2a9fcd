// Package geocode запрашивает координаты мест у внешнего провайдера
// геокодирования (Google Geocoding API совместимый endpoint).
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/urugendo/internal/models"
)

// ErrNoResults возвращается, когда провайдер не нашел место
var ErrNoResults = errors.New("no geocoding results")

// Geocoder defines interface for place name resolution
type Geocoder interface {
	// Geocode resolves a free-form place name into coordinates.
	// Returns ErrNoResults if the provider found nothing.
	Geocode(ctx context.Context, placeName string) (*models.Location, error)
}

// Config содержит настройки провайдера геокодирования
type Config struct {
	Endpoint string // базовый URL, например https://maps.googleapis.com/maps/api/geocode/json
	Key      string
	Timeout  time.Duration
}

// Client — HTTP клиент геокодирования
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New создает клиент геокодирования
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// geocodeResponse — ответ провайдера в формате Google Geocoding API
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		PlaceID          string `json:"place_id"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a place name via the provider
func (c *Client) Geocode(ctx context.Context, placeName string) (*models.Location, error) {
	query := url.Values{}
	query.Set("address", placeName)
	query.Set("key", c.cfg.Key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read geocode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode provider returned status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if decoded.Status == "ZERO_RESULTS" || len(decoded.Results) == 0 {
		return nil, ErrNoResults
	}
	if decoded.Status != "OK" {
		return nil, fmt.Errorf("geocode provider status %q", decoded.Status)
	}

	first := decoded.Results[0]
	// Координаты храним строками, как их отдает провайдер
	return &models.Location{
		PlaceName: first.FormattedAddress,
		Latitude:  strconv.FormatFloat(first.Geometry.Location.Lat, 'f', -1, 64),
		Longitude: strconv.FormatFloat(first.Geometry.Location.Lng, 'f', -1, 64),
		PlaceID:   first.PlaceID,
	}, nil
}
