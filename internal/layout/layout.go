package layout

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/org-hierarchy/internal/domain"
	"github.com/org-hierarchy/internal/organization"
	"gopkg.in/yaml.v3"
)

//go:embed american_airlines.yaml
var americanAirlines []byte

// Node - описание позиции в файле оргструктуры
type Node struct {
	Title    string        `yaml:"title" validate:"required,max=200"`
	Employee *EmployeeNode `yaml:"employee"`
	Reports  []Node        `yaml:"reports" validate:"dive"`
}

// EmployeeNode - сотрудник, уже занимающий позицию на момент построения
type EmployeeNode struct {
	ID        int64  `yaml:"id" validate:"required,min=1"`
	FirstName string `yaml:"first_name" validate:"required,max=200"`
	LastName  string `yaml:"last_name" validate:"max=200"`
}

// Default возвращает встроенную оргструктуру American Airlines
func Default() organization.Builder {
	return FromBytes(americanAirlines)
}

// FromFile строит оргструктуру из YAML-файла
func FromFile(path string) organization.Builder {
	return func() (*domain.Position, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open layout: %w", err)
		}
		defer f.Close()
		return FromYAML(f)()
	}
}

// FromBytes строит оргструктуру из YAML в памяти
func FromBytes(data []byte) organization.Builder {
	return func() (*domain.Position, error) {
		return FromYAML(bytes.NewReader(data))()
	}
}

// FromYAML читает дерево позиций из r при вызове builder'а
func FromYAML(r io.Reader) organization.Builder {
	return func() (*domain.Position, error) {
		var root Node
		if err := yaml.NewDecoder(r).Decode(&root); err != nil {
			return nil, fmt.Errorf("failed to decode layout: %w", err)
		}
		return Build(&root)
	}
}

// Build проверяет описание и собирает из него дерево позиций.
// Названия позиций и идентификаторы сотрудников должны быть уникальны во всём дереве,
// а идентификаторы начиная с EmployeeIdentifierBase зарезервированы за наймом.
func Build(root *Node) (*domain.Position, error) {
	if err := validator.New().Struct(root); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	b := &builder{
		titles: make(map[string]struct{}),
		ids:    make(map[int64]struct{}),
	}
	return b.build(root)
}

type builder struct {
	titles map[string]struct{}
	ids    map[int64]struct{}
}

func (b *builder) build(n *Node) (*domain.Position, error) {
	title := strings.TrimSpace(n.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if _, ok := b.titles[title]; ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateTitle, title)
	}
	b.titles[title] = struct{}{}

	var employee *domain.Employee
	if n.Employee != nil {
		id := n.Employee.ID
		if id >= organization.EmployeeIdentifierBase {
			return nil, fmt.Errorf("%w: %d", domain.ErrReservedEmployeeID, id)
		}
		if _, ok := b.ids[id]; ok {
			return nil, fmt.Errorf("%w: %d", domain.ErrDuplicateEmployeeID, id)
		}
		b.ids[id] = struct{}{}

		employee = domain.NewEmployee(id, domain.Name{
			First: n.Employee.FirstName,
			Last:  n.Employee.LastName,
		})
	}
	position := domain.NewFilledPosition(title, employee)

	for i := range n.Reports {
		report, err := b.build(&n.Reports[i])
		if err != nil {
			return nil, err
		}
		if _, err := position.AddDirectReport(report); err != nil {
			return nil, err
		}
	}

	return position, nil
}
