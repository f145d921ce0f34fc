package models

import "time"

// User types. Patients book for themselves; hospital admins manage one
// hospital and may book on a patient's behalf; system admins may do so for
// any hospital.
const (
	UserTypePatient       = "patient"
	UserTypeHospitalAdmin = "hospital_admin"
	UserTypeSystemAdmin   = "system_admin"
)

// User represents the users table. Both patients and admin staff live here,
// distinguished by UserType. MedicalRecordNo is an externally assigned
// patient identifier, unique among active patients within a hospital.
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	HospitalID      uint       `gorm:"not null;index" json:"hospital_id"`
	UserType        string     `gorm:"size:50;not null;default:'patient'" json:"user_type"`
	MedicalRecordNo *string    `gorm:"size:255" json:"medical_record_no,omitempty"`
	LineID          *string    `gorm:"size:255;index" json:"line_id,omitempty"`
	LoginID         *string    `gorm:"size:255;index" json:"login_id,omitempty"`
	Email           *string    `gorm:"size:255" json:"email,omitempty"`
	PasswordHash    *string    `gorm:"size:255" json:"-"`
	LastName        string     `gorm:"size:50" json:"last_name"`
	FirstName       string     `gorm:"size:50" json:"first_name"`
	Contact         string     `gorm:"size:50" json:"contact"`
	LastReserveDate *time.Time `json:"last_reserve_date,omitempty"`
	DeletedFlag     bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may act for a hospital.
func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeHospitalAdmin || u.UserType == UserTypeSystemAdmin
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TokenHash string    `gorm:"not null;size:255;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
