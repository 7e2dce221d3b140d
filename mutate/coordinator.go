// Package mutate executes create/update/delete operations and reconciles
// the query cache afterward. Employee mutations invalidate both cache
// segments because café records carry derived employee counts; café field
// edits touch only the café segment, while café deletes cascade server-side
// and therefore invalidate both.
package mutate

import (
	"context"
	"log/slog"

	"github.com/cafedesk/cafedesk/api"
	"github.com/cafedesk/cafedesk/query"
)

// Gateway is the write-side surface of the resource service.
type Gateway interface {
	CreateCafe(ctx context.Context, payload api.CafePayload) (*api.Cafe, error)
	UpdateCafe(ctx context.Context, id string, payload api.CafePayload) (*api.Cafe, error)
	DeleteCafe(ctx context.Context, id string) error
	CreateEmployee(ctx context.Context, payload api.EmployeePayload) (*api.Employee, error)
	UpdateEmployee(ctx context.Context, id string, payload api.EmployeePayload) (*api.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// Invalidator is the cache handle mutations reconcile through. The
// coordinator never reads or writes cache entries directly.
type Invalidator interface {
	Invalidate(kind query.Kind)
}

// Coordinator performs exactly one network call per operation and, on
// success, invalidates the affected cache segments. Failures propagate
// unmodified and leave the cache untouched. Updates and deletes are
// idempotent; creates are not, so duplicate-submit protection belongs to
// the caller.
type Coordinator struct {
	gateway Gateway
	cache   Invalidator
	logger  *slog.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator creates a coordinator over the given gateway and cache.
func NewCoordinator(gateway Gateway, cache Invalidator, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		gateway: gateway,
		cache:   cache,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SaveCafe creates the café when id is empty, otherwise updates it. The
// logo field is normalized so the wire carries either a real URL or an
// explicit null.
func (c *Coordinator) SaveCafe(ctx context.Context, id string, payload api.CafePayload) (*api.Cafe, error) {
	payload.Logo = api.NormalizeLogo(payload.Logo)

	var cafe *api.Cafe
	var err error
	if id == "" {
		cafe, err = c.gateway.CreateCafe(ctx, payload)
	} else {
		cafe, err = c.gateway.UpdateCafe(ctx, id, payload)
	}
	if err != nil {
		return nil, err
	}

	c.cache.Invalidate(query.KindCafes)
	c.logger.Info("Saved cafe", "id", cafe.ID, "name", cafe.Name)
	return cafe, nil
}

// DeleteCafe deletes the café. The server cascades to its employees, so
// both segments are invalidated.
func (c *Coordinator) DeleteCafe(ctx context.Context, id string) error {
	if err := c.gateway.DeleteCafe(ctx, id); err != nil {
		return err
	}

	c.cache.Invalidate(query.KindCafes)
	c.cache.Invalidate(query.KindEmployees)
	c.logger.Info("Deleted cafe", "id", id)
	return nil
}

// SaveEmployee creates the employee when id is empty, otherwise updates it.
// Café employee counts are derived from assignments, so both segments are
// invalidated.
func (c *Coordinator) SaveEmployee(ctx context.Context, id string, payload api.EmployeePayload) (*api.Employee, error) {
	var employee *api.Employee
	var err error
	if id == "" {
		employee, err = c.gateway.CreateEmployee(ctx, payload)
	} else {
		employee, err = c.gateway.UpdateEmployee(ctx, id, payload)
	}
	if err != nil {
		return nil, err
	}

	c.cache.Invalidate(query.KindEmployees)
	c.cache.Invalidate(query.KindCafes)
	c.logger.Info("Saved employee", "id", employee.ID, "name", employee.Name)
	return employee, nil
}

// DeleteEmployee deletes the employee and invalidates both segments.
func (c *Coordinator) DeleteEmployee(ctx context.Context, id string) error {
	if err := c.gateway.DeleteEmployee(ctx, id); err != nil {
		return err
	}

	c.cache.Invalidate(query.KindEmployees)
	c.cache.Invalidate(query.KindCafes)
	c.logger.Info("Deleted employee", "id", id)
	return nil
}
