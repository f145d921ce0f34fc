package service

import (
	"errors"
	"fmt"
	"time"

	"clinic-reservation-backend/internal/models"
	"clinic-reservation-backend/internal/repository"
	"clinic-reservation-backend/internal/schedule"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HospitalService struct {
	hospitalRepo *repository.HospitalRepository
	holidayRepo  *repository.HolidayRepository
	auditRepo    *repository.AuditRepository
	logger       *zap.Logger
}

func NewHospitalService(
	hospitalRepo *repository.HospitalRepository,
	holidayRepo *repository.HolidayRepository,
	auditRepo *repository.AuditRepository,
	logger *zap.Logger,
) *HospitalService {
	return &HospitalService{
		hospitalRepo: hospitalRepo,
		holidayRepo:  holidayRepo,
		auditRepo:    auditRepo,
		logger:       logger,
	}
}

// GetHospital returns an active hospital by internal id
func (s *HospitalService) GetHospital(id uint) (*models.Hospital, error) {
	hospital, err := s.hospitalRepo.GetHospitalByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}
	return hospital, nil
}

// GetHospitalByCode returns an active hospital by its public code
func (s *HospitalService) GetHospitalByCode(code string) (*models.Hospital, error) {
	hospital, err := s.hospitalRepo.GetHospitalByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}
	return hospital, nil
}

// UpdateHospital updates hospital metadata. Hospital admins may only edit
// their own hospital.
func (s *HospitalService) UpdateHospital(actorID uint, actorType string, actorHospitalID uint, hospital *models.Hospital) error {
	if actorType != models.UserTypeHospitalAdmin && actorType != models.UserTypeSystemAdmin {
		return ErrAuthorization
	}
	if actorType == models.UserTypeHospitalAdmin && hospital.ID != actorHospitalID {
		return ErrAuthorization
	}

	existing, err := s.hospitalRepo.GetHospitalByID(hospital.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHospitalNotFound
		}
		return err
	}
	// The public code is the patients' registration handle; edits keep it.
	hospital.Code = existing.Code

	if err := s.hospitalRepo.UpdateHospital(hospital); err != nil {
		return fmt.Errorf("failed to update hospital: %w", err)
	}

	actorIDPtr := &actorID
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "hospital_update", fmt.Sprintf("Updated hospital ID %d", hospital.ID))
	return nil
}

// ListHolidays returns a hospital's active holidays in date order
func (s *HospitalService) ListHolidays(hospitalID uint) ([]models.Holiday, error) {
	return s.holidayRepo.ListByHospital(hospitalID)
}

// AddHoliday marks a date as a holiday for the actor's hospital. Adding a
// date that was deleted earlier revives it; adding an active date fails.
func (s *HospitalService) AddHoliday(actorID uint, actorType string, actorHospitalID uint, date time.Time) (*models.Holiday, error) {
	if actorType != models.UserTypeHospitalAdmin && actorType != models.UserTypeSystemAdmin {
		return nil, ErrAuthorization
	}

	holiday, alreadyActive, err := s.holidayRepo.AddHoliday(actorHospitalID, schedule.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to create holiday: %w", err)
	}
	if alreadyActive {
		return nil, ErrHolidayExists
	}

	actorIDPtr := &actorID
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "holiday_add",
		fmt.Sprintf("Added holiday %s for hospital ID %d", holiday.HolidayDate.Format(schedule.DateLayout), actorHospitalID))

	s.logger.Info("Holiday added",
		zap.Uint("hospital_id", actorHospitalID),
		zap.String("date", holiday.HolidayDate.Format(schedule.DateLayout)),
	)
	return holiday, nil
}

// DeleteHoliday removes a holiday of the actor's hospital
func (s *HospitalService) DeleteHoliday(actorID uint, actorType string, actorHospitalID uint, holidayID uint) error {
	if actorType != models.UserTypeHospitalAdmin && actorType != models.UserTypeSystemAdmin {
		return ErrAuthorization
	}

	affected, err := s.holidayRepo.SoftDeleteHoliday(holidayID, actorHospitalID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if affected == 0 {
		return ErrHolidayNotFound
	}

	actorIDPtr := &actorID
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "holiday_delete", fmt.Sprintf("Deleted holiday ID %d", holidayID))
	return nil
}
