package repository

import (
	"time"

	"clinic-reservation-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepo(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ReservationRepository) WithTx(tx *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: tx}
}

// ActiveSlots returns the (date, time) pairs of active reservations for the
// hospital over the explicit date list
func (r *ReservationRepository) ActiveSlots(hospitalID uint, dates []time.Time) ([]models.Reservation, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	var reservations []models.Reservation
	err := r.db.Select("reservation_date", "reservation_time").
		Where("hospital_id = ? AND reservation_date IN ? AND deleted_flag = ?",
			hospitalID, dates, false).
		Find(&reservations).Error
	return reservations, err
}

// CountActiveAtForUpdate counts active reservations at one exact slot,
// holding the count under a row/gap lock for the rest of the transaction.
// Two concurrent booking attempts at the same slot therefore serialize at
// this read instead of both observing the pre-insert count.
func (r *ReservationRepository) CountActiveAtForUpdate(hospitalID uint, date time.Time, timeOfDay string) (int64, error) {
	q := r.db.Model(&models.Reservation{})
	// SQLite has a single writer and no FOR UPDATE syntax; the clause is
	// only meaningful (and valid) on MySQL/InnoDB.
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var count int64
	err := q.Where("hospital_id = ? AND reservation_date = ? AND reservation_time = ? AND deleted_flag = ?",
		hospitalID, date, timeOfDay, false).
		Count(&count).Error
	return count, err
}

// CreateReservation inserts a new active reservation
func (r *ReservationRepository) CreateReservation(reservation *models.Reservation) error {
	return r.db.Create(reservation).Error
}

// FindActiveByID finds an active reservation by internal id
func (r *ReservationRepository) FindActiveByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.Where("id = ? AND deleted_flag = ?", id, false).First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindActiveByIDForUpdate locks the active reservation row for the rest of
// the transaction so a cancel and a concurrent write on the same row cannot
// interleave
func (r *ReservationRepository) FindActiveByIDForUpdate(id uint) (*models.Reservation, error) {
	q := r.db
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var reservation models.Reservation
	err := q.Where("id = ? AND deleted_flag = ?", id, false).First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Cancel marks the reservation deleted and stamps the cancellation date.
// The row is retained; cancelled reservations are history, never removed.
func (r *ReservationRepository) Cancel(id uint, cancelDate time.Time) error {
	return r.db.Model(&models.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_flag": true,
			"cancel_date":  cancelDate,
		}).Error
}

// ListActiveByHospital returns all active reservations of a hospital with
// patient data, soonest slot first
func (r *ReservationRepository) ListActiveByHospital(hospitalID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.Where("hospital_id = ? AND deleted_flag = ?", hospitalID, false).
		Preload("Patient").
		Order("reservation_date ASC, reservation_time ASC").
		Find(&reservations).Error
	return reservations, err
}

// FindNextForUser returns the user's soonest upcoming active reservation,
// or gorm.ErrRecordNotFound when none exists
func (r *ReservationRepository) FindNextForUser(userID uint, afterDate time.Time, afterTime string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.Where("user_id = ? AND deleted_flag = ? AND cancel_date IS NULL", userID, false).
		Where("(reservation_date > ? OR (reservation_date = ? AND reservation_time > ?))",
			afterDate, afterDate, afterTime).
		Order("reservation_date ASC, reservation_time ASC").
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}
