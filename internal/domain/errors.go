package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrPositionNotFound = errors.New("position not found")
	ErrPositionFilled   = errors.New("position is already filled")
	ErrNilPosition      = errors.New("position cannot be nil")
	ErrSelfReport       = errors.New("position cannot report to itself")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDuplicateTitle   = errors.New("position with this title already exists")
	ErrEmptyTitle       = errors.New("position title is required")
	ErrLedgerMismatch   = errors.New("hire ledger does not match organization")

	ErrDuplicateEmployeeID = errors.New("employee with this id already exists")
	ErrReservedEmployeeID  = errors.New("employee id is reserved for hires")
)
