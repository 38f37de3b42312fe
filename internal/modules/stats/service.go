// README: Stats service; fetches the ride set and runs the aggregation engine.
package stats

import (
	"context"

	"getdriven/internal/modules/ride"
)

// RideSource supplies the full ride set for a user. The aggregation always
// sees every ride; filtering happens inside the engine so the available_*
// metadata can be derived from the unfiltered set.
type RideSource interface {
	List(ctx context.Context, userID, monthPrefix string) ([]ride.Ride, error)
}

type Service struct {
	rides RideSource
	cache *Cache // optional
}

func NewService(rides RideSource, cache *Cache) *Service {
	return &Service{rides: rides, cache: cache}
}

func (s *Service) Report(ctx context.Context, userID string, f Filter) (Report, error) {
	if s.cache != nil {
		if rep, ok := s.cache.Get(ctx, userID, f); ok {
			return rep, nil
		}
	}

	all, err := s.rides.List(ctx, userID, "")
	if err != nil {
		return Report{}, err
	}
	rep := Aggregate(all, f)

	if s.cache != nil {
		s.cache.Set(ctx, userID, f, rep)
	}
	return rep, nil
}
