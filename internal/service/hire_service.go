package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/org-hierarchy/internal/domain"
	"github.com/org-hierarchy/internal/dto"
	"github.com/org-hierarchy/internal/organization"
	"github.com/org-hierarchy/internal/repository"
)

// HireService определяет интерфейс бизнес-логики найма
type HireService interface {
	Hire(ctx context.Context, req *dto.HireRequest) (*dto.PositionResponse, error)
	Find(ctx context.Context, title string) (*dto.PositionResponse, error)
	Tree(ctx context.Context) *dto.PositionResponse
	Outline(ctx context.Context) string
	Employees(ctx context.Context) []dto.EmployeeResponse
	Employee(ctx context.Context, id int64) (*dto.EmployeeResponse, error)
	HireCount(ctx context.Context) (int64, error)
	Restore(ctx context.Context) error
}

type hireService struct {
	// mu защищает org: поиск идёт под чтением, проверка и найм - под записью
	mu       sync.RWMutex
	org      *organization.Organization
	hireRepo repository.HireRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewHireService создаёт новый экземпляр сервиса
func NewHireService(org *organization.Organization, hireRepo repository.HireRepository, logger *slog.Logger) HireService {
	return &hireService{
		org:      org,
		hireRepo: hireRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *hireService) Hire(ctx context.Context, req *dto.HireRequest) (*dto.PositionResponse, error) {
	person := domain.Name{
		First: strings.TrimSpace(req.FirstName),
		Last:  strings.TrimSpace(req.LastName),
	}
	title := req.Title

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.org.CheckVacancy(title); err != nil {
		s.logger.Info("hire rejected", slog.String("title", title), slog.String("reason", err.Error()))
		return nil, err
	}

	// Журнал пишется до изменения дерева
	rec := &repository.HireRecord{
		EmployeeID: s.org.NextEmployeeID(),
		FirstName:  person.First,
		LastName:   person.Last,
		Title:      title,
		HiredAt:    s.now().UTC(),
	}
	if err := s.hireRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record hire: %w", err)
	}

	position, err := s.org.Hire(person, title)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee hired",
		slog.Int64("employee_id", position.Employee().ID()),
		slog.String("title", title),
	)

	resp := toPositionResponse(position, 0)
	return &resp, nil
}

func (s *hireService) Find(_ context.Context, title string) (*dto.PositionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	position, ok := s.org.FindPosition(title)
	if !ok {
		return nil, domain.ErrPositionNotFound
	}

	resp := toPositionResponse(position, 1)
	return &resp, nil
}

func (s *hireService) Tree(_ context.Context) *dto.PositionResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := toPositionResponse(s.org.Root(), -1)
	return &resp
}

func (s *hireService) Outline(_ context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.org.String()
}

// Employees возвращает нанятых сотрудников в порядке найма,
// а за ними - сотрудников, заданных в оргструктуре при построении
func (s *hireService) Employees(_ context.Context) []dto.EmployeeResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hired := s.org.Employees()
	titles := make(map[*domain.Employee]string)
	var prefilled []dto.EmployeeResponse
	s.org.Walk(func(_ int, p *domain.Position) bool {
		if !p.IsFilled() {
			return true
		}
		titles[p.Employee()] = p.Title()
		if !slices.Contains(hired, p.Employee()) {
			prefilled = append(prefilled, toEmployeeResponse(p.Employee(), p.Title()))
		}
		return true
	})

	resp := make([]dto.EmployeeResponse, 0, len(hired)+len(prefilled))
	for _, emp := range hired {
		resp = append(resp, toEmployeeResponse(emp, titles[emp]))
	}
	return append(resp, prefilled...)
}

// Employee возвращает запись о найме сотрудника из журнала
func (s *hireService) Employee(ctx context.Context, id int64) (*dto.EmployeeResponse, error) {
	rec, err := s.hireRepo.GetByEmployeeID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.EmployeeResponse{
		ID:        rec.EmployeeID,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Title:     rec.Title,
		HiredAt:   &rec.HiredAt,
	}, nil
}

func (s *hireService) HireCount(ctx context.Context) (int64, error) {
	return s.hireRepo.Count(ctx)
}

// Restore повторяет журнал найма на только что построенном дереве.
// Любое расхождение идентификаторов или позиций считается ошибкой.
func (s *hireService) Restore(ctx context.Context) error {
	records, err := s.hireRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load hires: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		position, err := s.org.Hire(domain.Name{First: rec.FirstName, Last: rec.LastName}, rec.Title)
		if err != nil {
			return fmt.Errorf("%w: employee %d: %v", domain.ErrLedgerMismatch, rec.EmployeeID, err)
		}
		if id := position.Employee().ID(); id != rec.EmployeeID {
			return fmt.Errorf("%w: employee %d restored as %d", domain.ErrLedgerMismatch, rec.EmployeeID, id)
		}
	}

	s.logger.Info("hire ledger restored", slog.Int("hires", len(records)))
	return nil
}

// toPositionResponse копирует позицию и её поддерево до глубины depth; depth < 0 - без ограничения
func toPositionResponse(p *domain.Position, depth int) dto.PositionResponse {
	resp := dto.PositionResponse{
		Title:  p.Title(),
		Filled: p.IsFilled(),
	}

	if p.IsFilled() {
		emp := toEmployeeResponse(p.Employee(), "")
		resp.Employee = &emp
	}

	if depth == 0 {
		return resp
	}

	reports := p.DirectReports()
	if len(reports) > 0 {
		resp.DirectReports = make([]dto.PositionResponse, len(reports))
		for i, report := range reports {
			resp.DirectReports[i] = toPositionResponse(report, depth-1)
		}
	}

	return resp
}

func toEmployeeResponse(emp *domain.Employee, title string) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:        emp.ID(),
		FirstName: emp.Name().First,
		LastName:  emp.Name().Last,
		Title:     title,
	}
}
