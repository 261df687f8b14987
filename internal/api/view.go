package api

import (
	"fmt"
	"html/template"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/bobby-s-dev/weather-panel/internal/services"
)

// Asset names for the icon images; coarser than services.Category.
const (
	AssetClear   = "clear"
	AssetCloud   = "cloud"
	AssetDrizzle = "drizzle"
	AssetRain    = "rain"
	AssetSnow    = "snow"
)

var iconAssets = map[string]string{
	"01d": AssetClear,
	"01n": AssetClear,
	"02d": AssetCloud,
	"02n": AssetCloud,
	"03d": AssetCloud,
	"03n": AssetCloud,
	"04d": AssetDrizzle,
	"04n": AssetDrizzle,
	"09d": AssetRain,
	"09n": AssetRain,
	"10d": AssetRain,
	"10n": AssetRain,
	"13d": AssetSnow,
	"13n": AssetSnow,
}

// IconAsset returns the image asset for an icon code. Codes without an
// asset fall back to clear; an empty code has no asset.
func IconAsset(code string) string {
	if code == "" {
		return ""
	}
	if asset, ok := iconAssets[code]; ok {
		return asset
	}
	return AssetClear
}

// Particle is one decorative element; Children render nested inside it.
type Particle struct {
	Class    string       `json:"class"`
	Glyph    string       `json:"glyph,omitempty"`
	Style    template.CSS `json:"style,omitempty"`
	Children []Particle   `json:"children,omitempty"`
}

type Effect struct {
	Class     string     `json:"class"`
	Particles []Particle `json:"particles"`
}

// View is what the panel renders for one ViewState.
type View struct {
	State       services.ViewState `json:"state"`
	Status      string             `json:"status"`
	Loading     bool               `json:"loading"`
	Error       string             `json:"error,omitempty"`
	Notice      string             `json:"notice,omitempty"`
	City        string             `json:"city,omitempty"`
	Temperature string             `json:"temperature,omitempty"`
	Humidity    string             `json:"humidity,omitempty"`
	WindSpeed   string             `json:"wind_speed,omitempty"`
	IconAsset   string             `json:"icon_asset,omitempty"`
	Category    string             `json:"category,omitempty"`
	NightMode   bool               `json:"night_mode"`
	Classes     string             `json:"classes"`
	Effect      *Effect            `json:"effect,omitempty"`
}

func NewView(state services.ViewState, night bool) View {
	v := View{
		State:     state,
		Status:    state.Status().String(),
		Category:  string(state.Category()),
		NightMode: night,
	}

	switch state.Status() {
	case services.StatusLoading:
		v.Loading = true
	case services.StatusError:
		v.Error = state.Message()
	case services.StatusLoaded:
		report, _ := state.Report()
		v.City = report.City
		v.Temperature = fmt.Sprintf("%d°C", int(math.Floor(report.Temperature)))
		v.Humidity = fmt.Sprintf("%d%%", report.Humidity)
		v.WindSpeed = strconv.FormatFloat(report.WindSpeed, 'f', -1, 64) + " km/hr"
		v.IconAsset = IconAsset(report.Icon)
		v.Effect = effectFor(state.Category())
	}

	mode := "day-mode"
	if night {
		mode = "night-mode"
	}
	classes := []string{"weather"}
	if v.Category != "" {
		classes = append(classes, v.Category)
	}
	v.Classes = strings.Join(append(classes, mode), " ")

	return v
}

func effectFor(category services.Category) *Effect {
	switch category {
	case services.CategorySunny:
		return &Effect{Class: "sunny-effect", Particles: []Particle{{Class: "sun-rays"}}}
	case services.CategoryNight:
		stars := make([]Particle, 0, 15)
		for i := 0; i < 15; i++ {
			stars = append(stars, Particle{
				Class: "star",
				Glyph: "✦",
				Style: style("left: %.2f%%; top: %.2f%%; animation-delay: %.2fs", rand.Float64()*100, rand.Float64()*80, rand.Float64()*3),
			})
		}
		return &Effect{Class: "night-effect", Particles: []Particle{{Class: "moon"}, {Class: "stars", Children: stars}}}
	case services.CategoryRainy:
		particles := make([]Particle, 0, 25)
		for i := 0; i < 25; i++ {
			particles = append(particles, Particle{
				Class: "raindrop",
				Style: style("left: %.2f%%; animation-delay: %.2fs", rand.Float64()*100, rand.Float64()*2),
			})
		}
		return &Effect{Class: "rainy-effect", Particles: particles}
	case services.CategorySnowy:
		particles := make([]Particle, 0, 20)
		for i := 0; i < 20; i++ {
			particles = append(particles, Particle{
				Class: "snowflake",
				Glyph: "❄",
				Style: style("left: %.2f%%; animation-delay: %.2fs; font-size: %.1fpx", rand.Float64()*100, rand.Float64()*3, 12+rand.Float64()*6),
			})
		}
		return &Effect{Class: "snowy-effect", Particles: particles}
	case services.CategoryCold:
		return &Effect{Class: "cold-effect", Particles: []Particle{{Class: "frost-overlay"}}}
	case services.CategoryCloudy:
		return &Effect{Class: "cloudy-effect", Particles: []Particle{{Class: "cloud cloud1"}, {Class: "cloud cloud2"}}}
	default:
		return nil
	}
}

func style(format string, args ...interface{}) template.CSS {
	return template.CSS(fmt.Sprintf(format, args...))
}
