package dto

import "time"

// HireRequest - запрос на найм сотрудника на позицию
type HireRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=200"`
	LastName  string `json:"last_name" validate:"omitempty,max=200"`
	Title     string `json:"title" validate:"required,min=1,max=200"`
}

// PositionResponse - ответ с данными позиции и её подчинённых
type PositionResponse struct {
	Title         string             `json:"title"`
	Filled        bool               `json:"filled"`
	Employee      *EmployeeResponse  `json:"employee,omitempty"`
	DirectReports []PositionResponse `json:"direct_reports,omitempty"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name,omitempty"`
	Title     string     `json:"title,omitempty"`
	HiredAt   *time.Time `json:"hired_at,omitempty"`
}

// HealthResponse - ответ проверки состояния сервиса
type HealthResponse struct {
	Status string `json:"status"`
	Hires  int64  `json:"hires"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
