// Package store is the typed read side: it binds cache keys to gateway
// list calls so callers ask for collections and never handle keys or
// type-erased values themselves.
package store

import (
	"context"

	"github.com/cafedesk/cafedesk/api"
	"github.com/cafedesk/cafedesk/query"
)

// Lister is the read-side surface of the resource service.
type Lister interface {
	ListCafes(ctx context.Context, location string) ([]api.Cafe, error)
	ListEmployees(ctx context.Context, cafeName string) ([]api.Employee, error)
}

// Store serves collections through the query cache.
type Store struct {
	lister Lister
	cache  *query.Cache
}

// New creates a store over the given lister and cache.
func New(lister Lister, cache *query.Cache) *Store {
	return &Store{lister: lister, cache: cache}
}

// Cafes returns cafés, optionally filtered by location.
func (s *Store) Cafes(ctx context.Context, location string) ([]api.Cafe, error) {
	value, err := s.cache.Read(ctx, query.Key{Kind: query.KindCafes, Filter: location}, func(ctx context.Context) (any, error) {
		return s.lister.ListCafes(ctx, location)
	})
	if err != nil {
		return nil, err
	}
	return value.([]api.Cafe), nil
}

// Employees returns employees, optionally filtered by café name.
func (s *Store) Employees(ctx context.Context, cafeName string) ([]api.Employee, error) {
	value, err := s.cache.Read(ctx, query.Key{Kind: query.KindEmployees, Filter: cafeName}, func(ctx context.Context) (any, error) {
		return s.lister.ListEmployees(ctx, cafeName)
	})
	if err != nil {
		return nil, err
	}
	return value.([]api.Employee), nil
}

// FindCafe locates an edit target in the loaded café collection. An id
// absent from the collection is a NotFoundError; callers return the user
// to the list view.
func (s *Store) FindCafe(ctx context.Context, id string) (*api.Cafe, error) {
	cafes, err := s.Cafes(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range cafes {
		if cafes[i].ID == id {
			return &cafes[i], nil
		}
	}
	return nil, &api.NotFoundError{Kind: "cafe", ID: id}
}

// FindEmployee locates an edit target in the loaded employee collection.
func (s *Store) FindEmployee(ctx context.Context, id string) (*api.Employee, error) {
	employees, err := s.Employees(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i], nil
		}
	}
	return nil, &api.NotFoundError{Kind: "employee", ID: id}
}
