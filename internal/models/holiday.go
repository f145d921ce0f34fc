package models

import "time"

// Holiday marks a hospital fully closed on a calendar date. No time-of-day
// granularity. Unique per (hospital, date) among active rows.
type Holiday struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HospitalID  uint      `gorm:"not null;index:idx_holidays_hospital_date,unique" json:"hospital_id"`
	HolidayDate time.Time `gorm:"type:date;not null;index:idx_holidays_hospital_date,unique" json:"holiday_date"`
	DeletedFlag bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Holiday model
func (Holiday) TableName() string {
	return "holidays"
}
