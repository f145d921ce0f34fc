package service

import (
	"errors"
	"fmt"
	"time"

	"clinic-reservation-backend/internal/models"
	"clinic-reservation-backend/internal/repository"
	"clinic-reservation-backend/pkg/cursor"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultPatientPageSize = 20

type PatientService struct {
	userRepo     *repository.UserRepository
	hospitalRepo *repository.HospitalRepository
	auditRepo    *repository.AuditRepository
	logger       *zap.Logger
}

func NewPatientService(
	userRepo *repository.UserRepository,
	hospitalRepo *repository.HospitalRepository,
	auditRepo *repository.AuditRepository,
	logger *zap.Logger,
) *PatientService {
	return &PatientService{
		userRepo:     userRepo,
		hospitalRepo: hospitalRepo,
		auditRepo:    auditRepo,
		logger:       logger,
	}
}

// PatientCreate carries the fields of a patient self-registration
type PatientCreate struct {
	HospitalCode string
	LineID       string
	LastName     string
	FirstName    string
	Contact      string
	Email        string
}

// PatientUpdate carries the updatable patient fields. Nil means unchanged.
type PatientUpdate struct {
	Email           *string
	LastName        *string
	FirstName       *string
	Contact         *string
	MedicalRecordNo *string
}

// PatientPage is one page of a hospital's patient list
type PatientPage struct {
	Patients   []models.User `json:"patients"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// RegisterPatient creates a patient account attached to the hospital with
// the given public code
func (s *PatientService) RegisterPatient(req PatientCreate) (*models.User, error) {
	hospital, err := s.hospitalRepo.GetHospitalByCode(req.HospitalCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}

	lineID := req.LineID
	user := &models.User{
		HospitalID: hospital.ID,
		UserType:   models.UserTypePatient,
		LineID:     &lineID,
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		Contact:    req.Contact,
	}
	if req.Email != "" {
		email := req.Email
		user.Email = &email
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	userIDPtr := &user.ID
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "patient_register", fmt.Sprintf("Patient registered for hospital ID %d", hospital.ID))

	s.logger.Info("Patient registered",
		zap.Uint("patient_id", user.ID),
		zap.Uint("hospital_id", hospital.ID),
	)
	return user, nil
}

// UpdatePatient updates patient record fields. Only admins of the patient's
// hospital (or system admins) may call it. A medical record number that
// collides with another active patient of the same hospital is rejected.
func (s *PatientService) UpdatePatient(actorType string, actorHospitalID uint, patientID uint, update PatientUpdate) (*models.User, error) {
	if actorType != models.UserTypeHospitalAdmin && actorType != models.UserTypeSystemAdmin {
		return nil, ErrAuthorization
	}

	patient, err := s.userRepo.FindUserByID(patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	if patient.UserType != models.UserTypePatient {
		return nil, ErrPatientNotFound
	}
	if actorType == models.UserTypeHospitalAdmin && patient.HospitalID != actorHospitalID {
		return nil, ErrAuthorization
	}

	if update.MedicalRecordNo != nil && *update.MedicalRecordNo != "" {
		taken, err := s.userRepo.MRNTakenByOther(patient.HospitalID, *update.MedicalRecordNo, patient.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateMedicalRecordNumber
		}
		patient.MedicalRecordNo = update.MedicalRecordNo
	}
	if update.Email != nil {
		patient.Email = update.Email
	}
	if update.LastName != nil {
		patient.LastName = *update.LastName
	}
	if update.FirstName != nil {
		patient.FirstName = *update.FirstName
	}
	if update.Contact != nil {
		patient.Contact = *update.Contact
	}

	if err := s.userRepo.UpdateUser(patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(nil, "patient_update", fmt.Sprintf("Updated patient ID %d", patient.ID))
	return patient, nil
}

// GetPatient returns a patient record, visible to the patient themselves
// and to admins of their hospital
func (s *PatientService) GetPatient(actorID uint, actorType string, actorHospitalID uint, patientID uint) (*models.User, error) {
	patient, err := s.userRepo.FindUserByID(patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	if patient.UserType != models.UserTypePatient {
		return nil, ErrPatientNotFound
	}

	switch {
	case actorID == patient.ID:
	case actorType == models.UserTypeSystemAdmin:
	case actorType == models.UserTypeHospitalAdmin && patient.HospitalID == actorHospitalID:
	default:
		return nil, ErrAuthorization
	}
	return patient, nil
}

// ListPatients returns one cursor page of the hospital's active patients,
// most recently reserved first. Admin only.
func (s *PatientService) ListPatients(actorType string, actorHospitalID uint, cursorToken string, limit int) (*PatientPage, error) {
	if actorType != models.UserTypeHospitalAdmin && actorType != models.UserTypeSystemAdmin {
		return nil, ErrAuthorization
	}
	if limit <= 0 || limit > 100 {
		limit = defaultPatientPageSize
	}

	var afterReserve time.Time
	var afterID uint
	if cursorToken != "" {
		payload, err := cursor.Decode(cursorToken)
		if err != nil {
			return nil, err
		}
		reserveStr, ok1 := payload["last_reserve_date"].(string)
		idNum, ok2 := payload["id"].(float64)
		if !ok1 || !ok2 {
			return nil, cursor.ErrInvalidCursor
		}
		afterReserve, err = time.Parse(time.RFC3339, reserveStr)
		if err != nil {
			return nil, cursor.ErrInvalidCursor
		}
		afterID = uint(idNum)
	}

	patients, err := s.userRepo.ListPatients(actorHospitalID, afterReserve, afterID, limit)
	if err != nil {
		return nil, err
	}

	page := &PatientPage{Patients: patients}
	if len(patients) == limit {
		last := patients[len(patients)-1]
		marker := time.Unix(0, 0).UTC()
		if last.LastReserveDate != nil {
			marker = *last.LastReserveDate
		}
		token, err := cursor.Encode(map[string]interface{}{
			"last_reserve_date": marker.Format(time.RFC3339),
			"id":                last.ID,
		})
		if err != nil {
			return nil, err
		}
		page.NextCursor = token
	}
	return page, nil
}
