package repository

import (
	"errors"
	"time"

	"clinic-reservation-backend/internal/models"

	"gorm.io/gorm"
)

type HolidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepo(db *gorm.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *HolidayRepository) WithTx(tx *gorm.DB) *HolidayRepository {
	return &HolidayRepository{db: tx}
}

// DatesIn returns the subset of the given dates that are holidays for the
// hospital. Membership lookup over the explicit date list, not a range
// scan, so nothing outside the rolling window can match.
func (r *HolidayRepository) DatesIn(hospitalID uint, dates []time.Time) ([]time.Time, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	var holidays []models.Holiday
	err := r.db.Where("hospital_id = ? AND holiday_date IN ? AND deleted_flag = ?",
		hospitalID, dates, false).
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	result := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		result = append(result, h.HolidayDate)
	}
	return result, nil
}

// IsHoliday reports whether the hospital is closed on the given date
func (r *HolidayRepository) IsHoliday(hospitalID uint, date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Holiday{}).
		Where("hospital_id = ? AND holiday_date = ? AND deleted_flag = ?", hospitalID, date, false).
		Count(&count).Error
	return count > 0, err
}

// ListByHospital returns all active holidays of a hospital in date order
func (r *HolidayRepository) ListByHospital(hospitalID uint) ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := r.db.Where("hospital_id = ? AND deleted_flag = ?", hospitalID, false).
		Order("holiday_date ASC").
		Find(&holidays).Error
	return holidays, err
}

// AddHoliday marks the date as a holiday. The unique (hospital, date) index
// spans soft-deleted rows, so a previously removed holiday is revived in
// place instead of inserted again. Returns the row and whether an active
// holiday already existed.
func (r *HolidayRepository) AddHoliday(hospitalID uint, date time.Time) (*models.Holiday, bool, error) {
	var holiday models.Holiday
	alreadyActive := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("hospital_id = ? AND holiday_date = ?", hospitalID, date).
			First(&holiday).Error
		switch {
		case err == nil:
			if !holiday.DeletedFlag {
				alreadyActive = true
				return nil
			}
			holiday.DeletedFlag = false
			return tx.Model(&holiday).Update("deleted_flag", false).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			holiday = models.Holiday{HospitalID: hospitalID, HolidayDate: date}
			return tx.Create(&holiday).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}
	return &holiday, alreadyActive, nil
}

// SoftDeleteHoliday marks a holiday as deleted
func (r *HolidayRepository) SoftDeleteHoliday(id uint, hospitalID uint) (int64, error) {
	res := r.db.Model(&models.Holiday{}).
		Where("id = ? AND hospital_id = ? AND deleted_flag = ?", id, hospitalID, false).
		Update("deleted_flag", true)
	return res.RowsAffected, res.Error
}
