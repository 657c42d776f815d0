package repository

import (
	"context"

	"cardiomed/internal/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, appt *models.DoctorAppointmentReminder) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *AppointmentRepository) Get(ctx context.Context, id uint) (*models.DoctorAppointmentReminder, error) {
	return findByID[models.DoctorAppointmentReminder](r.db.WithContext(ctx), id)
}

func (r *AppointmentRepository) Save(ctx context.Context, appt *models.DoctorAppointmentReminder) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.DoctorAppointmentReminder](r.db.WithContext(ctx), id)
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID uint, includeCompleted bool) ([]models.DoctorAppointmentReminder, error) {
	var appts []models.DoctorAppointmentReminder
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeCompleted {
		q = q.Where("is_completed = ?", false)
	}
	err := q.Order("appointment_datetime ASC").Find(&appts).Error
	return appts, err
}

func (r *AppointmentRepository) Complete(ctx context.Context, id uint) (*models.DoctorAppointmentReminder, error) {
	db := r.db.WithContext(ctx)
	appt, err := findByID[models.DoctorAppointmentReminder](db, id)
	if err != nil {
		return nil, err
	}
	if !appt.IsCompleted {
		if err := db.Model(appt).Update("is_completed", true).Error; err != nil {
			return nil, err
		}
		appt.IsCompleted = true
	}
	return appt, nil
}
