package models

import "time"

// Hospital represents a clinic in the system. Code is the public-facing
// identifier patients register with; internal ids never leave the API
// unencoded.
type Hospital struct {
	ID                      uint      `gorm:"primaryKey" json:"id"`
	Code                    string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name                    string    `gorm:"size:255;not null" json:"name"`
	Website                 string    `gorm:"size:255" json:"website,omitempty"`
	PostalCode              string    `gorm:"size:20" json:"postal_code,omitempty"`
	Address                 string    `gorm:"size:255" json:"address,omitempty"`
	Phone                   string    `gorm:"size:20" json:"phone,omitempty"`
	Fax                     string    `gorm:"size:20" json:"fax,omitempty"`
	ReservationPolicyHeader string    `gorm:"type:text" json:"reservation_policy_header,omitempty"`
	ReservationPolicyBody   string    `gorm:"type:text" json:"reservation_policy_body,omitempty"`
	Treatment               string    `gorm:"type:text" json:"treatment,omitempty"`
	DeletedFlag             bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}
