package repository

import (
	"context"
	"errors"
	"time"

	"github.com/org-hierarchy/internal/domain"
	"gorm.io/gorm"
)

// HireRecord - запись журнала найма
type HireRecord struct {
	EmployeeID int64     `gorm:"primaryKey;autoIncrement:false"`
	FirstName  string    `gorm:"type:varchar(200);not null"`
	LastName   string    `gorm:"type:varchar(200);not null"`
	Title      string    `gorm:"type:varchar(200);not null;index"`
	HiredAt    time.Time `gorm:"not null"`
}

// TableName задаёт имя таблицы для GORM
func (HireRecord) TableName() string {
	return "hires"
}

// HireRepository определяет интерфейс для работы с журналом найма
type HireRepository interface {
	Create(ctx context.Context, rec *HireRecord) error
	GetByEmployeeID(ctx context.Context, id int64) (*HireRecord, error)
	List(ctx context.Context) ([]HireRecord, error)
	Count(ctx context.Context) (int64, error)
}

type hireRepository struct {
	db *gorm.DB
}

// NewHireRepository создаёт новый экземпляр репозитория
func NewHireRepository(db *gorm.DB) HireRepository {
	return &hireRepository{db: db}
}

func (r *hireRepository) Create(ctx context.Context, rec *HireRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *hireRepository) GetByEmployeeID(ctx context.Context, id int64) (*HireRecord, error) {
	var rec HireRecord
	err := r.db.WithContext(ctx).First(&rec, "employee_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List возвращает записи в порядке найма
func (r *hireRepository) List(ctx context.Context) ([]HireRecord, error) {
	var records []HireRecord
	err := r.db.WithContext(ctx).
		Order("employee_id ASC").
		Find(&records).Error
	return records, err
}

func (r *hireRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&HireRecord{}).Count(&count).Error
	return count, err
}
