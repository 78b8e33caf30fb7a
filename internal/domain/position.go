package domain

import "slices"

// Position представляет узел оргструктуры: должность, сотрудника на ней и прямых подчинённых
type Position struct {
	title         string
	employee      *Employee
	directReports []*Position
}

// NewPosition создаёт вакантную позицию
func NewPosition(title string) *Position {
	return &Position{title: title}
}

// NewFilledPosition создаёт позицию с уже назначенным сотрудником
func NewFilledPosition(title string, employee *Employee) *Position {
	p := NewPosition(title)
	if employee != nil {
		p.SetEmployee(employee)
	}
	return p
}

func (p *Position) Title() string {
	return p.title
}

// SetEmployee заменяет сотрудника; nil освобождает позицию.
// Проверки занятости выполняет Organization.
func (p *Position) SetEmployee(employee *Employee) {
	p.employee = employee
}

func (p *Position) Employee() *Employee {
	return p.employee
}

func (p *Position) IsFilled() bool {
	return p.employee != nil
}

// AddDirectReport добавляет прямого подчинённого.
// Возвращает false, если позиция уже в списке.
func (p *Position) AddDirectReport(position *Position) (bool, error) {
	if position == nil {
		return false, ErrNilPosition
	}
	if position == p {
		return false, ErrSelfReport
	}
	if slices.Contains(p.directReports, position) {
		return false, nil
	}
	p.directReports = append(p.directReports, position)
	return true, nil
}

// RemovePosition убирает прямого подчинённого вместе с его поддеревом
func (p *Position) RemovePosition(position *Position) bool {
	i := slices.Index(p.directReports, position)
	if i < 0 {
		return false
	}
	p.directReports = slices.Delete(p.directReports, i, i+1)
	return true
}

// DirectReports возвращает копию списка подчинённых в порядке добавления
func (p *Position) DirectReports() []*Position {
	return slices.Clone(p.directReports)
}

func (p *Position) String() string {
	if p.employee == nil {
		return p.title
	}
	return p.title + ": " + p.employee.String()
}
