// README: Ride service; resolves the policy, runs the pay engine and persists the record.
package ride

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"getdriven/internal/modules/payroll"
	"getdriven/internal/modules/settings"
)

var (
	ErrNotFound   = errors.New("ride not found")
	ErrBadRequest = errors.New("bad request")
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, r *Ride) error
	Get(ctx context.Context, id, userID string) (*Ride, error)
	List(ctx context.Context, userID, monthPrefix string) ([]Ride, error)
	Update(ctx context.Context, r *Ride) error
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// PolicyResolver yields the compensation policy in effect for a user.
// It must be consulted fresh on every calculation; the service never caches
// a policy across calls.
type PolicyResolver interface {
	PolicyFor(ctx context.Context, userID string) (settings.Policy, error)
}

// Invalidator is told when a user's ride set changed so derived caches
// (stats reports) can be dropped. May be nil.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string)
}

type Service struct {
	store    Store
	policies PolicyResolver
	caches   Invalidator
}

func NewService(store Store, policies PolicyResolver, caches Invalidator) *Service {
	return &Service{store: store, policies: policies, caches: caches}
}

func (s *Service) Create(ctx context.Context, userID string, in Input) (*Ride, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	p, err := s.policies.PolicyFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	r := &Ride{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	applyInput(r, in)
	if err := compute(r, p); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return r, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Ride, error) {
	return s.store.Get(ctx, id, userID)
}

// List returns the user's rides, newest date first. monthPrefix ("YYYY-MM")
// is optional and filters on the date's year-month prefix.
func (s *Service) List(ctx context.Context, userID, monthPrefix string) ([]Ride, error) {
	return s.store.List(ctx, userID, monthPrefix)
}

// Update replaces the caller-supplied fields and recomputes every derived
// field under the policy in effect now. Earlier records are never touched
// when the policy changes; only an explicit edit triggers a recompute.
// CreatedAt keeps its original value.
func (s *Service) Update(ctx context.Context, id, userID string, in Input) (*Ride, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	r, err := s.store.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.policies.PolicyFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyInput(r, in)
	if err := compute(r, p); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, r); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	deleted, err := s.store.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidate(ctx, userID)
	return nil
}

func validateInput(in Input) error {
	if in.ExtraCosts < 0 || in.WWVKm < 0 {
		return ErrBadRequest
	}
	return nil
}

func applyInput(r *Ride, in Input) {
	r.Date = in.Date
	r.ClientName = in.ClientName
	r.CarBrand = in.CarBrand
	r.CarModel = in.CarModel
	r.StartTime = in.StartTime
	r.EndTime = in.EndTime
	r.ExtraCosts = in.ExtraCosts
	r.WWVKm = in.WWVKm
	r.Notes = in.Notes
}

func compute(r *Ride, p settings.Policy) error {
	b, err := payroll.Calculate(r.Date, r.StartTime, r.EndTime, p)
	if err != nil {
		return err
	}
	t := payroll.Finalize(b, r.WWVKm, r.ExtraCosts, p)

	r.TotalHours = b.TotalHours
	r.NormalHours = b.NormalHours
	r.OvertimeHours = b.OvertimeHours
	r.NightHours = b.NightHours
	r.NormalPay = b.NormalPay
	r.OvertimePay = b.OvertimePay
	r.NightPay = b.NightPay
	r.GrossPay = b.GrossPay
	r.WWVAmount = t.WWVAmount
	r.SocialContribution = t.SocialContribution
	r.GrossTotal = t.GrossTotal
	r.NetPay = t.NetPay
	return nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.caches != nil {
		s.caches.Invalidate(ctx, userID)
	}
}
