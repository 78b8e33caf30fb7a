package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/org-hierarchy/internal/domain"
	"github.com/org-hierarchy/internal/dto"
	"github.com/org-hierarchy/internal/organization"
	"github.com/org-hierarchy/internal/repository"
	"github.com/org-hierarchy/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHireRepo struct {
	mu        sync.Mutex
	records   map[int64]repository.HireRecord
	createErr error
}

func newMockHireRepo() *mockHireRepo {
	return &mockHireRepo{records: make(map[int64]repository.HireRecord)}
}

func (m *mockHireRepo) Create(_ context.Context, rec *repository.HireRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.records[rec.EmployeeID]; ok {
		return errors.New("duplicate employee id")
	}
	m.records[rec.EmployeeID] = *rec
	return nil
}

func (m *mockHireRepo) GetByEmployeeID(_ context.Context, id int64) (*repository.HireRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[id]; ok {
		return &rec, nil
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *mockHireRepo) List(_ context.Context) ([]repository.HireRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]repository.HireRecord, 0, len(m.records))
	for _, rec := range m.records {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

func (m *mockHireRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records)), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testTree() (*domain.Position, error) {
	ceo := domain.NewPosition("CEO")
	cto := domain.NewPosition("CTO")
	if _, err := cto.AddDirectReport(domain.NewPosition("Engineer")); err != nil {
		return nil, err
	}
	if _, err := ceo.AddDirectReport(cto); err != nil {
		return nil, err
	}
	if _, err := ceo.AddDirectReport(domain.NewPosition("CFO")); err != nil {
		return nil, err
	}
	return ceo, nil
}

func newService(t *testing.T, repo repository.HireRepository) service.HireService {
	t.Helper()
	org, err := organization.New(testTree)
	require.NoError(t, err)
	return service.NewHireService(org, repo, testLogger())
}

func TestHire_PersistsRecord(t *testing.T) {
	repo := newMockHireRepo()
	svc := newService(t, repo)
	ctx := context.Background()

	pos, err := svc.Hire(ctx, &dto.HireRequest{FirstName: " Alice ", LastName: "Smith", Title: "CTO"})
	require.NoError(t, err)

	assert.Equal(t, "CTO", pos.Title)
	assert.True(t, pos.Filled)
	require.NotNil(t, pos.Employee)
	assert.Equal(t, int64(2023000), pos.Employee.ID)
	assert.Equal(t, "Alice", pos.Employee.FirstName)
	assert.Empty(t, pos.DirectReports)

	rec, err := repo.GetByEmployeeID(ctx, 2023000)
	require.NoError(t, err)
	assert.Equal(t, "CTO", rec.Title)
	assert.Equal(t, "Alice", rec.FirstName)
	assert.False(t, rec.HiredAt.IsZero())
}

func TestHire_FailuresAreNotPersisted(t *testing.T) {
	repo := newMockHireRepo()
	svc := newService(t, repo)
	ctx := context.Background()

	_, err := svc.Hire(ctx, &dto.HireRequest{FirstName: "Alice", Title: "CTO"})
	require.NoError(t, err)

	_, err = svc.Hire(ctx, &dto.HireRequest{FirstName: "Bob", Title: "CTO"})
	assert.ErrorIs(t, err, domain.ErrPositionFilled)

	_, err = svc.Hire(ctx, &dto.HireRequest{FirstName: "Carl", Title: "VP of Nothing"})
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)

	count, _ := repo.Count(ctx)
	assert.Equal(t, int64(1), count)
	assert.Len(t, svc.Employees(ctx), 1)
}

func TestHire_RepositoryFailureLeavesTreeUntouched(t *testing.T) {
	repo := newMockHireRepo()
	repo.createErr = errors.New("db is down")
	svc := newService(t, repo)
	ctx := context.Background()

	_, err := svc.Hire(ctx, &dto.HireRequest{FirstName: "Alice", Title: "CTO"})
	require.Error(t, err)

	pos, err := svc.Find(ctx, "CTO")
	require.NoError(t, err)
	assert.False(t, pos.Filled)
	assert.Empty(t, svc.Employees(ctx))

	repo.createErr = nil
	pos, err = svc.Hire(ctx, &dto.HireRequest{FirstName: "Alice", Title: "CTO"})
	require.NoError(t, err)
	assert.Equal(t, int64(2023000), pos.Employee.ID)
}

func TestHire_ConcurrentSamePosition(t *testing.T) {
	repo := newMockHireRepo()
	svc := newService(t, repo)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Hire(ctx, &dto.HireRequest{FirstName: "Racer", Title: "CFO"}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, svc.Employees(ctx), 1)
}

func TestFind(t *testing.T) {
	svc := newService(t, newMockHireRepo())
	ctx := context.Background()

	pos, err := svc.Find(ctx, "CTO")
	require.NoError(t, err)
	assert.Equal(t, "CTO", pos.Title)
	require.Len(t, pos.DirectReports, 1)
	assert.Equal(t, "Engineer", pos.DirectReports[0].Title)

	_, err = svc.Find(ctx, "Janitor")
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)
}

func TestTreeAndOutline(t *testing.T) {
	svc := newService(t, newMockHireRepo())
	ctx := context.Background()

	_, err := svc.Hire(ctx, &dto.HireRequest{FirstName: "Dee", Title: "Engineer"})
	require.NoError(t, err)

	tree := svc.Tree(ctx)
	assert.Equal(t, "CEO", tree.Title)
	require.Len(t, tree.DirectReports, 2)
	engineer := tree.DirectReports[0].DirectReports[0]
	assert.Equal(t, "Engineer", engineer.Title)
	assert.True(t, engineer.Filled)

	want := "+-CEO\n  +-CTO\n    +-Engineer: Dee (2023000)\n  +-CFO\n"
	assert.Equal(t, want, svc.Outline(ctx))
}

func TestEmployees(t *testing.T) {
	svc := newService(t, newMockHireRepo())
	ctx := context.Background()

	for _, title := range []string{"CFO", "CEO"} {
		_, err := svc.Hire(ctx, &dto.HireRequest{FirstName: "E", Title: title})
		require.NoError(t, err)
	}

	employees := svc.Employees(ctx)
	require.Len(t, employees, 2)
	assert.Equal(t, dto.EmployeeResponse{ID: 2023000, FirstName: "E", Title: "CFO"}, employees[0])
	assert.Equal(t, dto.EmployeeResponse{ID: 2023001, FirstName: "E", Title: "CEO"}, employees[1])
}

func TestRestore(t *testing.T) {
	repo := newMockHireRepo()
	ctx := context.Background()

	first := newService(t, repo)
	for _, title := range []string{"CTO", "Engineer"} {
		_, err := first.Hire(ctx, &dto.HireRequest{FirstName: "E", Title: title})
		require.NoError(t, err)
	}

	second := newService(t, repo)
	require.NoError(t, second.Restore(ctx))
	assert.Equal(t, first.Outline(ctx), second.Outline(ctx))

	pos, err := second.Hire(ctx, &dto.HireRequest{FirstName: "Next", Title: "CFO"})
	require.NoError(t, err)
	assert.Equal(t, int64(2023002), pos.Employee.ID)
}

func TestRestore_Mismatch(t *testing.T) {
	ctx := context.Background()

	unknown := newMockHireRepo()
	require.NoError(t, unknown.Create(ctx, &repository.HireRecord{EmployeeID: 2023000, FirstName: "E", Title: "Janitor"}))
	err := newService(t, unknown).Restore(ctx)
	assert.ErrorIs(t, err, domain.ErrLedgerMismatch)

	gap := newMockHireRepo()
	require.NoError(t, gap.Create(ctx, &repository.HireRecord{EmployeeID: 2023005, FirstName: "E", Title: "CTO"}))
	err = newService(t, gap).Restore(ctx)
	assert.ErrorIs(t, err, domain.ErrLedgerMismatch)
}

func TestHire_TitleMatchesExactly(t *testing.T) {
	repo := newMockHireRepo()
	svc := newService(t, repo)
	ctx := context.Background()

	_, err := svc.Hire(ctx, &dto.HireRequest{FirstName: "A", Title: " CTO "})
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)

	_, err = svc.Find(ctx, " CTO ")
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)

	pos, err := svc.Find(ctx, "CTO")
	require.NoError(t, err)
	assert.False(t, pos.Filled)

	count, _ := repo.Count(ctx)
	assert.Zero(t, count)
}

func TestEmployee(t *testing.T) {
	repo := newMockHireRepo()
	svc := newService(t, repo)
	ctx := context.Background()

	_, err := svc.Hire(ctx, &dto.HireRequest{FirstName: "Alice", LastName: "Smith", Title: "CFO"})
	require.NoError(t, err)

	emp, err := svc.Employee(ctx, 2023000)
	require.NoError(t, err)
	assert.Equal(t, "Alice", emp.FirstName)
	assert.Equal(t, "Smith", emp.LastName)
	assert.Equal(t, "CFO", emp.Title)
	require.NotNil(t, emp.HiredAt)

	_, err = svc.Employee(ctx, 2023001)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	count, err := svc.HireCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEmployees_IncludesPrefilled(t *testing.T) {
	org, err := organization.New(func() (*domain.Position, error) {
		ceo := domain.NewFilledPosition("CEO", domain.NewEmployee(1, domain.Name{First: "Robert"}))
		if _, err := ceo.AddDirectReport(domain.NewPosition("CTO")); err != nil {
			return nil, err
		}
		return ceo, nil
	})
	require.NoError(t, err)
	svc := service.NewHireService(org, newMockHireRepo(), testLogger())
	ctx := context.Background()

	_, err = svc.Hire(ctx, &dto.HireRequest{FirstName: "Alice", Title: "CTO"})
	require.NoError(t, err)

	employees := svc.Employees(ctx)
	require.Len(t, employees, 2)
	assert.Equal(t, dto.EmployeeResponse{ID: 2023000, FirstName: "Alice", Title: "CTO"}, employees[0])
	assert.Equal(t, dto.EmployeeResponse{ID: 1, FirstName: "Robert", Title: "CEO"}, employees[1])
}
