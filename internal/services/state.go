package services

import (
	"encoding/json"

	"github.com/bobby-s-dev/weather-panel/internal/models"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
	StatusLoaded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// ViewState is exactly one of Idle, Loading, Error(message) or
// Loaded(report, category). Values are only built by the constructors below,
// so an error message and a report never coexist.
type ViewState struct {
	status   Status
	message  string
	report   models.WeatherReport
	category Category
}

func Idle() ViewState { return ViewState{status: StatusIdle} }

func Loading() ViewState { return ViewState{status: StatusLoading} }

func Failed(message string) ViewState {
	return ViewState{status: StatusError, message: message}
}

func Loaded(report models.WeatherReport, category Category) ViewState {
	return ViewState{status: StatusLoaded, report: report, category: category}
}

func (v ViewState) Status() Status { return v.status }

// Message is the error text; empty unless the state is Error.
func (v ViewState) Message() string { return v.message }

// Report returns the loaded report and true only in the Loaded state.
func (v ViewState) Report() (models.WeatherReport, bool) {
	if v.status != StatusLoaded {
		return models.WeatherReport{}, false
	}
	return v.report, true
}

// Category is empty unless the state is Loaded.
func (v ViewState) Category() Category { return v.category }

func (v ViewState) MarshalJSON() ([]byte, error) {
	out := struct {
		Status   string                `json:"status"`
		Message  string                `json:"message,omitempty"`
		Report   *models.WeatherReport `json:"report,omitempty"`
		Category Category              `json:"category,omitempty"`
	}{
		Status:   v.status.String(),
		Message:  v.message,
		Category: v.category,
	}
	if report, ok := v.Report(); ok {
		out.Report = &report
	}
	return json.Marshal(out)
}
