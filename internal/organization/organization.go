package organization

import (
	"errors"
	"slices"
	"strings"

	"github.com/org-hierarchy/internal/domain"
)

// EmployeeIdentifierBase - базовое значение идентификатора сотрудника
const EmployeeIdentifierBase = 2023000

// Builder строит конкретную оргструктуру и возвращает корневую позицию
type Builder func() (*domain.Position, error)

// Organization владеет деревом позиций и нанимает сотрудников на вакантные позиции
type Organization struct {
	root      *domain.Position
	employees []*domain.Employee
}

// New создаёт организацию, дерево которой строит переданный builder
func New(build Builder) (*Organization, error) {
	if build == nil {
		return nil, errors.New("organization builder is required")
	}
	root, err := build()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrNilPosition
	}
	return &Organization{root: root}, nil
}

func (o *Organization) Root() *domain.Position {
	return o.root
}

// Hire нанимает человека на позицию с указанным названием.
// При ошибке дерево не изменяется, а возвращаемая ошибка - *HireError.
func (o *Organization) Hire(person domain.Name, title string) (*domain.Position, error) {
	position, err := o.CheckVacancy(title)
	if err != nil {
		return nil, err
	}

	employee := domain.NewEmployee(o.NextEmployeeID(), person)
	position.SetEmployee(employee)
	o.employees = append(o.employees, employee)

	return position, nil
}

// CheckVacancy находит позицию и проверяет, что она свободна, ничего не изменяя
func (o *Organization) CheckVacancy(title string) (*domain.Position, error) {
	position, ok := o.FindPosition(title)
	if !ok {
		return nil, &HireError{Title: title, Err: domain.ErrPositionNotFound}
	}

	// Позиции второго уровня проверяем через список прямых подчинённых корня
	occupied := position.IsFilled()
	if reports := o.root.DirectReports(); slices.Contains(reports, position) {
		occupied = ValidatePositionOccupancy(reports, title)
	}
	if occupied {
		return nil, &HireError{Title: title, Err: domain.ErrPositionFilled}
	}

	return position, nil
}

// NextEmployeeID возвращает идентификатор, который получит следующий нанятый сотрудник
func (o *Organization) NextEmployeeID() int64 {
	return EmployeeIdentifierBase + int64(len(o.employees))
}

// FindPosition ищет позицию в глубину: сначала корень, затем каждое поддерево по порядку
func (o *Organization) FindPosition(title string) (*domain.Position, bool) {
	var found *domain.Position
	o.Walk(func(_ int, p *domain.Position) bool {
		if p.Title() == title {
			found = p
			return false
		}
		return true
	})
	return found, found != nil
}

// ValidatePositionOccupancy сообщает, занята ли позиция среди прямых подчинённых.
// Более глубокие уровни не просматриваются.
func ValidatePositionOccupancy(directReports []*domain.Position, title string) bool {
	for _, p := range directReports {
		if p.Title() == title {
			return p.IsFilled()
		}
	}
	return false
}

// Walk обходит дерево в прямом порядке. Обход прекращается, когда fn возвращает false.
func (o *Organization) Walk(fn func(depth int, p *domain.Position) bool) {
	walk(o.root, 0, fn)
}

func walk(p *domain.Position, depth int, fn func(int, *domain.Position) bool) bool {
	if !fn(depth, p) {
		return false
	}
	for _, report := range p.DirectReports() {
		if !walk(report, depth+1, fn) {
			return false
		}
	}
	return true
}

// Employees возвращает всех нанятых сотрудников в порядке найма
func (o *Organization) Employees() []*domain.Employee {
	out := make([]*domain.Employee, len(o.employees))
	copy(out, o.employees)
	return out
}

// String выводит дерево в виде списка с отступом в два пробела на уровень
func (o *Organization) String() string {
	var sb strings.Builder
	o.Walk(func(depth int, p *domain.Position) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("+-")
		sb.WriteString(p.String())
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
