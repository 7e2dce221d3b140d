package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafedesk/cafedesk/api"
	"github.com/cafedesk/cafedesk/query"
)

type fakeLister struct {
	cafeCalls     int
	employeeCalls int
	cafes         []api.Cafe
	employees     []api.Employee
}

func (f *fakeLister) ListCafes(ctx context.Context, location string) ([]api.Cafe, error) {
	f.cafeCalls++
	if location == "" {
		return f.cafes, nil
	}
	var filtered []api.Cafe
	for _, c := range f.cafes {
		if c.Location == location {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (f *fakeLister) ListEmployees(ctx context.Context, cafeName string) ([]api.Employee, error) {
	f.employeeCalls++
	return f.employees, nil
}

func newFixture() (*fakeLister, *Store, *query.Cache) {
	lister := &fakeLister{
		cafes: []api.Cafe{
			{ID: "c1", Name: "North Brew", Location: "North", Employees: 2},
			{ID: "c2", Name: "South Brew", Location: "South", Employees: 1},
			{ID: "c3", Name: "East Brew", Location: "East", Employees: 0},
		},
		employees: []api.Employee{
			{ID: "UI0000001", Name: "Alice Wong", CafeName: "North Brew"},
		},
	}
	cache := query.NewCache()
	return lister, New(lister, cache), cache
}

func TestStore_CafesCachedPerFilter(t *testing.T) {
	lister, s, _ := newFixture()

	all, err := s.Cafes(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	north, err := s.Cafes(context.Background(), "North")
	require.NoError(t, err)
	assert.Len(t, north, 1)
	assert.Equal(t, 2, lister.cafeCalls, "distinct filters are distinct cache keys")

	_, err = s.Cafes(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, lister.cafeCalls, "repeat reads serve from cache")
}

func TestStore_FindCafe(t *testing.T) {
	_, s, _ := newFixture()

	cafe, err := s.FindCafe(context.Background(), "c2")
	require.NoError(t, err)
	assert.Equal(t, "South Brew", cafe.Name)

	_, err = s.FindCafe(context.Background(), "c9")
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

func TestStore_FindEmployee(t *testing.T) {
	_, s, _ := newFixture()

	employee, err := s.FindEmployee(context.Background(), "UI0000001")
	require.NoError(t, err)
	assert.Equal(t, "Alice Wong", employee.Name)

	_, err = s.FindEmployee(context.Background(), "UI0000009")
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

// An employee assignment changes a café's derived count; after the
// employee mutation invalidates the café segment, the next café read must
// reflect the new count via refetch rather than the cached value.
func TestStore_EmployeeSaveRefreshesCafeCounts(t *testing.T) {
	lister, s, cache := newFixture()

	cafes, err := s.Cafes(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, 2, cafes[0].Employees)

	// Server-side effect of assigning a new employee to c1.
	lister.cafes[0].Employees = 3
	cache.Invalidate(query.KindEmployees)
	cache.Invalidate(query.KindCafes)

	cafes, err = s.Cafes(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, cafes[0].Employees)
	assert.Equal(t, 2, lister.cafeCalls)
}
