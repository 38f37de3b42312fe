// README: Settings service resolves policies and applies partial updates.
package settings

import (
	"context"
	"errors"
)

// ErrEmptyUpdate is returned when an update carries no fields to change.
var ErrEmptyUpdate = errors.New("no settings fields to update")

// Store is the persistence surface the service needs.
type Store interface {
	Get(ctx context.Context, userID string) (Policy, error)
	Put(ctx context.Context, userID string, p Policy) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// PolicyFor resolves the policy in effect for a user. A missing row is not
// an error: the defaults apply. The caller must not cache the result across
// requests; pay calculation always loads the policy fresh.
func (s *Service) PolicyFor(ctx context.Context, userID string) (Policy, error) {
	p, err := s.store.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Defaults, nil
	}
	if err != nil {
		return Policy{}, err
	}
	return p, nil
}

// CreateDefaults writes the default policy for a freshly registered user.
func (s *Service) CreateDefaults(ctx context.Context, userID string) error {
	return s.store.Put(ctx, userID, Defaults)
}

// Update applies a partial update on top of the user's current policy (or
// the defaults when none is stored yet) and returns the merged result.
func (s *Service) Update(ctx context.Context, userID string, u Update) (Policy, error) {
	if u.Empty() {
		return Policy{}, ErrEmptyUpdate
	}
	current, err := s.PolicyFor(ctx, userID)
	if err != nil {
		return Policy{}, err
	}
	merged := current.Merge(u)
	if err := s.store.Put(ctx, userID, merged); err != nil {
		return Policy{}, err
	}
	return merged, nil
}
