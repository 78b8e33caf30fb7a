package domain

import (
	"fmt"
	"strings"
)

// Name - имя нанимаемого человека
type Name struct {
	First string `json:"first_name"`
	Last  string `json:"last_name"`
}

func (n Name) String() string {
	return strings.TrimSpace(n.First + " " + n.Last)
}

// Employee представляет сотрудника, занимающего позицию
type Employee struct {
	id   int64
	name Name
}

// NewEmployee создаёт неизменяемую запись о сотруднике
func NewEmployee(id int64, name Name) *Employee {
	return &Employee{id: id, name: name}
}

func (e *Employee) ID() int64 {
	return e.id
}

func (e *Employee) Name() Name {
	return e.name
}

func (e *Employee) String() string {
	return fmt.Sprintf("%s (%d)", e.name, e.id)
}
