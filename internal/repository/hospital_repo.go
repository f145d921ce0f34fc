package repository

import (
	"clinic-reservation-backend/internal/models"

	"gorm.io/gorm"
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepo(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// GetHospitalByID retrieves an active hospital by internal id
func (r *HospitalRepository) GetHospitalByID(id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.Where("id = ? AND deleted_flag = ?", id, false).First(&hospital).Error
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

// GetHospitalByCode retrieves an active hospital by its public code
func (r *HospitalRepository) GetHospitalByCode(code string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.Where("code = ? AND deleted_flag = ?", code, false).First(&hospital).Error
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

// UpdateHospital updates an existing hospital
func (r *HospitalRepository) UpdateHospital(hospital *models.Hospital) error {
	return r.db.Save(hospital).Error
}
