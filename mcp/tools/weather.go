package tools

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/agrisage/agroserve/internal/appconfig"
	"github.com/agrisage/agroserve/internal/logging"
)

// wttrReport captures the fields the weather tool renders from a format=j1
// response.
type wttrReport struct {
	CurrentCondition []wttrCondition `json:"current_condition"`
}

type wttrCondition struct {
	TempC         string            `json:"temp_C"`
	Humidity      string            `json:"humidity"`
	WindspeedKmph string            `json:"windspeedKmph"`
	WeatherDesc   []wttrDescription `json:"weatherDesc"`
}

type wttrDescription struct {
	Value string `json:"value"`
}

// CurrentWeatherDefinition describes the weather tool.
func CurrentWeatherDefinition() Definition {
	return Definition{
		Name:        CurrentWeatherName,
		Description: "Get current weather conditions for a specific city or location. Use this when users ask about weather, temperature, or climate.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{
					"type":        "string",
					"description": "Name of the city to get weather for",
				},
			},
			"required": []string{"city"},
		},
	}
}

// CurrentWeatherHandler returns the handler for the weather tool. Every
// failure mode, including a missing city argument, surfaces as an error whose
// text opens with "Error fetching weather".
func CurrentWeatherHandler(cfg *appconfig.Config) Handler {
	return func(args map[string]any) ([]ContentPart, error) {
		city, err := requiredStringArg(args, "city")
		if err != nil {
			return nil, fmt.Errorf("Error fetching weather: %v", err)
		}

		report, err := fetchWeather(cfg, city)
		if err != nil {
			logging.LogEvent("API Error: %v", err)
			return nil, fmt.Errorf("Error fetching weather: %v", err)
		}

		return Text(formatWeather(city, report)), nil
	}
}

// weatherClient builds the per-call HTTP client for the weather provider.
// Redirects follow the default policy. TLS verification stays on unless the
// insecureWeatherTLS config option is set.
func weatherClient(cfg *appconfig.Config) *http.Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if cfg.InsecureWeatherTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{
		Timeout:   cfg.WeatherTimeoutDuration(),
		Transport: transport,
	}
}

func fetchWeather(cfg *appconfig.Config, city string) (wttrReport, error) {
	client := weatherClient(cfg)
	defer client.CloseIdleConnections()

	endpoint := fmt.Sprintf("%s/%s?format=j1", cfg.WeatherEndpoint(), url.PathEscape(city))
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return wttrReport{}, fmt.Errorf("failed to create weather request: %v", err)
	}
	req.Header.Set("User-Agent", cfg.RequestUserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return wttrReport{}, fmt.Errorf("weather request failed: %v", err)
	}
	defer resp.Body.Close()

	logging.LogEvent("DEBUG: wttr.in returned %d", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return wttrReport{}, fmt.Errorf("weather service returned status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wttrReport{}, fmt.Errorf("failed to read weather response: %v", err)
	}

	var report wttrReport
	if err := json.Unmarshal(body, &report); err != nil {
		return wttrReport{}, fmt.Errorf("failed to parse weather JSON: %v", err)
	}

	// Guard the slices before rendering indexes them.
	if len(report.CurrentCondition) == 0 || len(report.CurrentCondition[0].WeatherDesc) == 0 {
		return wttrReport{}, fmt.Errorf("weather data is missing or incomplete")
	}
	return report, nil
}

// formatWeather renders the fixed multi-line weather template. An absent wind
// speed reads as N/A; the other fields are always present after the fetch
// guards.
func formatWeather(city string, report wttrReport) string {
	current := report.CurrentCondition[0]
	wind := current.WindspeedKmph
	if wind == "" {
		wind = "N/A"
	}
	return fmt.Sprintf(
		"🌤️  Current Weather in %s:\n"+
			"━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
			"Temperature: %s°C\n"+
			"Condition: %s\n"+
			"Humidity: %s%%\n"+
			"Wind Speed: %s km/h",
		city, current.TempC, current.WeatherDesc[0].Value, current.Humidity, wind)
}
