package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

const (
	RouteModeRail = "rail"
	RouteModeRoad = "road"
)

// SerpAPI travel_mode values.
const (
	travelModeDriving = "1"
	travelModeTransit = "3"
)

// Route is the shortest leg the directions search returned.
type Route struct {
	DistanceKm float64
	Duration   string
}

// RouteClient queries a SerpAPI compatible Google Maps directions endpoint.
type RouteClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRouteClient(baseURL, apiKey string) *RouteClient {
	return &RouteClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

type directionsResponse struct {
	Error      string `json:"error"`
	Directions []struct {
		TravelMode        string  `json:"travel_mode"`
		Distance          float64 `json:"distance"`
		FormattedDistance string  `json:"formatted_distance"`
		FormattedDuration string  `json:"formatted_duration"`
	} `json:"directions"`
}

// FindRoute returns the shortest route between origin and destination for mode
// (RouteModeRail or RouteModeRoad). dto.ErrNoRoute is returned when nothing usable comes back.
func (rc *RouteClient) FindRoute(ctx context.Context, origin, destination, mode string) (*Route, error) {
	params := url.Values{}
	params.Set("engine", "google_maps_directions")
	params.Set("start_addr", origin)
	params.Set("end_addr", destination)
	params.Set("api_key", rc.apiKey)

	switch mode {
	case RouteModeRail:
		params.Set("travel_mode", travelModeTransit)
		params.Set("prefer", "train")
	case RouteModeRoad:
		params.Set("travel_mode", travelModeDriving)
	default:
		return nil, fmt.Errorf("unsupported route mode %q", mode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rc.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directions request: %w", err)
	}

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call directions API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("directions API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("%w: %s", dto.ErrNoRoute, result.Error)
	}

	var best *Route
	for _, d := range result.Directions {
		km := d.Distance / 1000
		if km <= 0 {
			km = parseFormattedDistance(d.FormattedDistance)
		}
		if km <= 0 {
			continue
		}
		if best == nil || km < best.DistanceKm {
			best = &Route{DistanceKm: km, Duration: d.FormattedDuration}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: %s to %s by %s", dto.ErrNoRoute, origin, destination, mode)
	}
	return best, nil
}

// parseFormattedDistance understands "142 km", "1,204 km" and "850 m".
func parseFormattedDistance(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	v := dto.ParseLooseFloat(s)
	if strings.HasSuffix(s, " m") && !strings.HasSuffix(s, " km") {
		return v / 1000
	}
	return v
}
