// mcp/tools/weather_test.go
package tools

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agrisage/agroserve/internal/appconfig"
)

const wttrSample = `{
	"current_condition": [
		{
			"temp_C": "18",
			"humidity": "63",
			"windspeedKmph": "11",
			"weatherDesc": [{"value": "Partly cloudy"}]
		}
	]
}`

func TestCurrentWeatherHandlerSuccess(t *testing.T) {
	t.Parallel()

	var gotPath, gotFormat, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFormat = r.URL.Query().Get("format")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(wttrSample))
	}))
	defer server.Close()

	cfg := &appconfig.Config{WeatherBaseURL: server.URL}
	handler := CurrentWeatherHandler(cfg)

	parts, err := handler(map[string]any{"city": "Paris"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if gotPath != "/Paris" {
		t.Fatalf("unexpected request path: %s", gotPath)
	}
	if gotFormat != "j1" {
		t.Fatalf("expected format=j1 query, got %q", gotFormat)
	}
	if gotAgent != "Mozilla/5.0" {
		t.Fatalf("unexpected User-Agent: %q", gotAgent)
	}

	expected := strings.Join([]string{
		"🌤️  Current Weather in Paris:",
		strings.Repeat("━", 28),
		"Temperature: 18°C",
		"Condition: Partly cloudy",
		"Humidity: 63%",
		"Wind Speed: 11 km/h",
	}, "\n")
	if len(parts) != 1 || parts[0].Type != "text" {
		t.Fatalf("expected one text part, got %+v", parts)
	}
	if parts[0].Text != expected {
		t.Fatalf("unexpected report:\n%s\nwant:\n%s", parts[0].Text, expected)
	}
}

func TestCurrentWeatherHandlerWindFallback(t *testing.T) {
	t.Parallel()

	payload := `{"current_condition":[{"temp_C":"7","humidity":"90","weatherDesc":[{"value":"Mist"}]}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	handler := CurrentWeatherHandler(&appconfig.Config{WeatherBaseURL: server.URL})
	parts, err := handler(map[string]any{"city": "London"})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !strings.Contains(parts[0].Text, "Wind Speed: N/A km/h") {
		t.Fatalf("expected N/A wind speed, got:\n%s", parts[0].Text)
	}
}

func TestCurrentWeatherHandlerServiceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	handler := CurrentWeatherHandler(&appconfig.Config{WeatherBaseURL: server.URL})
	_, err := handler(map[string]any{"city": "Nowhere"})
	if err == nil {
		t.Fatalf("expected error for 404 response")
	}
	if !strings.HasPrefix(err.Error(), "Error fetching weather:") {
		t.Fatalf("unexpected error prefix: %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status in error, got: %v", err)
	}
}

func TestCurrentWeatherHandlerIncompletePayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_condition":[]}`))
	}))
	defer server.Close()

	handler := CurrentWeatherHandler(&appconfig.Config{WeatherBaseURL: server.URL})
	_, err := handler(map[string]any{"city": "Atlantis"})
	if err == nil || !strings.Contains(err.Error(), "weather data is missing or incomplete") {
		t.Fatalf("expected incomplete-data error, got: %v", err)
	}
}

func TestCurrentWeatherHandlerCityValidation(t *testing.T) {
	t.Parallel()

	handler := CurrentWeatherHandler(&appconfig.Config{})

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing", map[string]any{}, "Error fetching weather: 'city' argument is required"},
		{"nil args", nil, "Error fetching weather: 'city' argument is required"},
		{"blank", map[string]any{"city": "   "}, "Error fetching weather: 'city' argument cannot be empty"},
		{"non-string", map[string]any{"city": 42}, "Error fetching weather: 'city' argument must be a string"},
	}
	for _, tc := range tests {
		_, err := handler(tc.args)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if err.Error() != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, err.Error(), tc.want)
		}
	}
}

func TestCurrentWeatherHandlerTimeout(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-done
	}))
	defer server.Close()
	defer close(done)

	cfg := &appconfig.Config{WeatherBaseURL: server.URL, WeatherTimeout: 1}
	handler := CurrentWeatherHandler(cfg)
	_, err := handler(map[string]any{"city": "Oslo"})
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if !strings.HasPrefix(err.Error(), "Error fetching weather:") {
		t.Fatalf("unexpected error prefix: %v", err)
	}
}

func TestCurrentWeatherHandlerEscapesCity(t *testing.T) {
	t.Parallel()

	var gotEscaped string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEscaped = r.URL.EscapedPath()
		_, _ = w.Write([]byte(wttrSample))
	}))
	defer server.Close()

	handler := CurrentWeatherHandler(&appconfig.Config{WeatherBaseURL: server.URL})
	if _, err := handler(map[string]any{"city": "San Francisco"}); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if gotEscaped != "/San%20Francisco" {
		t.Fatalf("expected escaped path, got %s", gotEscaped)
	}
}
