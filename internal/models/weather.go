package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// StatusCode is the provider's "cod" field. OpenWeatherMap sends it as a
// number on success and as a string ("404") on most errors.
type StatusCode int

const StatusOK StatusCode = 200

func (s *StatusCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		code, err := strconv.Atoi(str)
		if err != nil {
			*s = 0
			return nil
		}
		*s = StatusCode(code)
		return nil
	}

	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	*s = StatusCode(code)
	return nil
}

// CurrentResponse is the current-weather payload as the provider sends it.
type CurrentResponse struct {
	Cod     StatusCode `json:"cod"`
	Message string     `json:"message,omitempty"`
	Name    string     `json:"name"`
	Main    struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		ID          int    `json:"id,omitempty"`
		Main        string `json:"main,omitempty"`
		Description string `json:"description,omitempty"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// Icon returns the first weather entry's icon code, or "" when the
// provider sent no weather entries.
func (r *CurrentResponse) Icon() string {
	if len(r.Weather) == 0 {
		return ""
	}
	return r.Weather[0].Icon
}

// WeatherReport is the normalized result of a successful lookup.
type WeatherReport struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Icon        string  `json:"icon"`
}

// NewWeatherReport extracts the report fields from a successful response.
func NewWeatherReport(r *CurrentResponse) WeatherReport {
	return WeatherReport{
		City:        r.Name,
		Temperature: r.Main.Temp,
		Humidity:    r.Main.Humidity,
		WindSpeed:   r.Wind.Speed,
		Icon:        r.Icon(),
	}
}
