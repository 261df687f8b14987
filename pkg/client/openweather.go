package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/bobby-s-dev/weather-panel/internal/models"
	"go.uber.org/zap"
)

const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"

// KeySource supplies the provider API key at request time.
type KeySource interface {
	APIKey() string
}

// StaticKey is a KeySource for a key fixed at deploy time.
type StaticKey string

func (k StaticKey) APIKey() string { return string(k) }

type OpenWeatherClient struct {
	*BaseClient
	keys    KeySource
	baseURL string
}

func NewOpenWeatherClient(keys KeySource, baseURL string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeatherClient{
		BaseClient: NewBaseClient("openweather", config, logger),
		keys:       keys,
		baseURL:    baseURL,
	}
}

// GetCurrentWeather fetches current conditions for city in metric units.
// A non-nil response may still carry a provider error in its Cod field.
func (c *OpenWeatherClient) GetCurrentWeather(ctx context.Context, city string) (*models.CurrentResponse, error) {
	endpoint, err := c.currentURL(city)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	data, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	var response models.CurrentResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrTransport, err)
	}

	return &response, nil
}

func (c *OpenWeatherClient) currentURL(city string) (string, error) {
	u, err := url.Parse(c.baseURL + "/weather")
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	q := u.Query()
	q.Set("q", city)
	q.Set("units", "metric")
	if c.keys != nil {
		q.Set("appid", c.keys.APIKey())
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
