package repository

import (
	"errors"
	"time"

	"clinic-reservation-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// FindUserByID finds an active user by internal id
func (r *UserRepository) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND deleted_flag = ?", id, false).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByLoginID finds an active user by login id
func (r *UserRepository) FindUserByLoginID(loginID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("login_id = ? AND deleted_flag = ?", loginID, false).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByLineID finds an active user by LINE id
func (r *UserRepository) FindUserByLineID(lineID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("line_id = ? AND deleted_flag = ?", lineID, false).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActivePatientByMRN finds an active patient by medical record number
// within one hospital
func (r *UserRepository) FindActivePatientByMRN(hospitalID uint, mrn string) (*models.User, error) {
	var user models.User
	err := r.db.Where(
		"hospital_id = ? AND medical_record_no = ? AND user_type = ? AND deleted_flag = ?",
		hospitalID, mrn, models.UserTypePatient, false,
	).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MRNTakenByOther reports whether another active patient in the hospital
// already holds the medical record number
func (r *UserRepository) MRNTakenByOther(hospitalID uint, mrn string, excludeUserID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("hospital_id = ? AND medical_record_no = ? AND user_type = ? AND deleted_flag = ? AND id <> ?",
			hospitalID, mrn, models.UserTypePatient, false, excludeUserID).
		Count(&count).Error
	return count > 0, err
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// UpdateUser persists changes to an existing user
func (r *UserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateLastReserveDate sets the patient's denormalized last-reservation
// marker. Written inside the booking transaction so it cannot drift from
// the reservation rows.
func (r *UserRepository) UpdateLastReserveDate(userID uint, at time.Time) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_reserve_date", at).Error
}

// ListPatients returns one page of active patients of a hospital, newest
// last_reserve_date first. The after pair is the cursor position; zero
// values mean the first page.
func (r *UserRepository) ListPatients(hospitalID uint, afterReserve time.Time, afterID uint, limit int) ([]models.User, error) {
	q := r.db.Where("hospital_id = ? AND user_type = ? AND deleted_flag = ?",
		hospitalID, models.UserTypePatient, false)

	if afterID > 0 {
		// COALESCE keeps never-reserved patients (NULL marker) in a stable
		// position at the end of the ordering.
		q = q.Where(
			"(COALESCE(last_reserve_date, '1970-01-01') < ? OR (COALESCE(last_reserve_date, '1970-01-01') = ? AND id < ?))",
			afterReserve, afterReserve, afterID,
		)
	}

	var patients []models.User
	err := q.Order("COALESCE(last_reserve_date, '1970-01-01') DESC, id DESC").
		Limit(limit).
		Find(&patients).Error
	return patients, err
}

// CreateRefreshToken creates a new refresh token
func (r *UserRepository) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindRefreshTokenByHash finds a refresh token by its hash
func (r *UserRepository) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.Where("token_hash = ? AND revoked = ?", hash, false).
		Preload("User").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found or revoked")
		}
		return nil, err
	}
	return &token, nil
}

// RevokeRefreshTokenByHash marks a refresh token as revoked by its hash
func (r *UserRepository) RevokeRefreshTokenByHash(hash string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

// DeleteStaleRefreshTokens removes refresh tokens that expired before the
// given moment or were revoked. Token rows carry no audit value, unlike
// reservations, so they are physically deleted.
func (r *UserRepository) DeleteStaleRefreshTokens(before time.Time) (int64, error) {
	res := r.db.Where("expires_at < ? OR revoked = ?", before, true).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
