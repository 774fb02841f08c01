package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/client"
	"github.com/Aashish23092/tour-diary-generator/dto"
)

// RouteFinder looks up one route for a travel mode.
type RouteFinder interface {
	FindRoute(ctx context.Context, origin, destination, mode string) (*client.Route, error)
}

// DistanceResolver asks for a rail route first and a road route only when
// rail fails or finds nothing. Results are not cached.
type DistanceResolver struct {
	finder RouteFinder
}

func NewDistanceResolver(finder RouteFinder) *DistanceResolver {
	return &DistanceResolver{finder: finder}
}

func (r *DistanceResolver) Resolve(ctx context.Context, origin, destination string) (*dto.DistanceResponse, error) {
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", dto.ErrNoRoute)
	}

	route, railErr := r.finder.FindRoute(ctx, origin, destination, client.RouteModeRail)
	if railErr == nil && route != nil && route.DistanceKm > 0 {
		return distanceResponse(origin, destination, client.RouteModeRail, route), nil
	}
	if railErr == nil {
		railErr = dto.ErrNoRoute
	}

	route, roadErr := r.finder.FindRoute(ctx, origin, destination, client.RouteModeRoad)
	if roadErr == nil && route != nil && route.DistanceKm > 0 {
		return distanceResponse(origin, destination, client.RouteModeRoad, route), nil
	}
	if roadErr == nil {
		roadErr = dto.ErrNoRoute
	}

	return nil, fmt.Errorf("%s to %s: rail: %w; road: %w", origin, destination, railErr, roadErr)
}

func distanceResponse(origin, destination, mode string, route *client.Route) *dto.DistanceResponse {
	return &dto.DistanceResponse{
		From:       origin,
		To:         destination,
		Mode:       mode,
		DistanceKm: route.DistanceKm,
		Duration:   route.Duration,
	}
}

// FillMissingDistances resolves a distance for every trip that still has none.
// Lookup failures leave the trip unchanged.
func (r *DistanceResolver) FillMissingDistances(ctx context.Context, requestID string, trips []dto.Trip) int {
	filled := 0
	for i := range trips {
		if trips[i].HasDistance() {
			continue
		}
		res, err := r.Resolve(ctx, trips[i].DeparturePlace, trips[i].ArrivalPlace)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return filled
			}
			log.Printf("[%s] distance lookup failed: %v", requestID, err)
			continue
		}
		trips[i].DistanceKm = dto.FlexFloat(res.DistanceKm)
		filled++
	}
	return filled
}
