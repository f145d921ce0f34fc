package models

import "time"

// Reservation represents one booked slot. Rows are never deleted:
// cancellation sets DeletedFlag and stamps CancelDate, and every read path
// must filter on DeletedFlag so cancelled rows stay historical.
type Reservation struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	HospitalID      uint       `gorm:"not null;index:idx_reservations_slot" json:"hospital_id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	ReservationDate time.Time  `gorm:"type:date;not null;index:idx_reservations_slot" json:"reservation_date"`
	ReservationTime string     `gorm:"size:5;not null;index:idx_reservations_slot" json:"reservation_time"`
	Treatment       string     `gorm:"type:text" json:"treatment,omitempty"`
	CancelDate      *time.Time `gorm:"type:date" json:"cancel_date,omitempty"`
	DeletedFlag     bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Patient *User `gorm:"foreignKey:UserID" json:"patient,omitempty"`
}

// TableName specifies the table name for Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
