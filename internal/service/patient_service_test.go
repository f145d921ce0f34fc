package service

import (
	"fmt"
	"testing"
	"time"

	"clinic-reservation-backend/internal/models"
	"clinic-reservation-backend/internal/repository"
	"clinic-reservation-backend/pkg/cursor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newPatientService(t *testing.T, db *gorm.DB) *PatientService {
	t.Helper()
	return NewPatientService(
		repository.NewUserRepo(db),
		repository.NewHospitalRepo(db),
		repository.NewAuditRepo(db),
		zap.NewNop(),
	)
}

func TestRegisterPatient(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)
	hospital := seedHospital(t, db)

	patient, err := svc.RegisterPatient(PatientCreate{
		HospitalCode: hospital.Code,
		LineID:       "line-abc",
		LastName:     "Tanaka",
		FirstName:    "Ichiro",
		Contact:      "080-1111-2222",
		Email:        "ichiro@example.com",
	})
	require.NoError(t, err)
	require.NotZero(t, patient.ID)
	assert.Equal(t, hospital.ID, patient.HospitalID)
	assert.Equal(t, models.UserTypePatient, patient.UserType)
	require.NotNil(t, patient.LineID)
	assert.Equal(t, "line-abc", *patient.LineID)
	assert.Nil(t, patient.MedicalRecordNo)
}

func TestRegisterPatientUnknownHospitalCode(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)

	_, err := svc.RegisterPatient(PatientCreate{
		HospitalCode: "NO-SUCH-CODE",
		LineID:       "line-abc",
		LastName:     "Tanaka",
		FirstName:    "Ichiro",
	})
	assert.ErrorIs(t, err, ErrHospitalNotFound)
}

func TestUpdatePatientAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)
	hospital := seedHospital(t, db)
	other := &models.Hospital{Code: "HSP-002", Name: "Other Clinic"}
	require.NoError(t, db.Create(other).Error)
	patient := seedPatient(t, db, hospital.ID, "A001")

	newName := "Sato"

	// Patients may not update records
	_, err := svc.UpdatePatient(models.UserTypePatient, hospital.ID, patient.ID, PatientUpdate{LastName: &newName})
	assert.ErrorIs(t, err, ErrAuthorization)

	// Hospital admins are scoped to their own hospital
	_, err = svc.UpdatePatient(models.UserTypeHospitalAdmin, other.ID, patient.ID, PatientUpdate{LastName: &newName})
	assert.ErrorIs(t, err, ErrAuthorization)

	// System admins cross hospitals
	updated, err := svc.UpdatePatient(models.UserTypeSystemAdmin, other.ID, patient.ID, PatientUpdate{LastName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Sato", updated.LastName)
}

func TestUpdatePatientMRN(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)
	hospital := seedHospital(t, db)
	patient := seedPatient(t, db, hospital.ID, "A001")
	seedPatient(t, db, hospital.ID, "A002")

	// A free number is assignable
	mrn := "A777"
	updated, err := svc.UpdatePatient(models.UserTypeHospitalAdmin, hospital.ID, patient.ID, PatientUpdate{MedicalRecordNo: &mrn})
	require.NoError(t, err)
	require.NotNil(t, updated.MedicalRecordNo)
	assert.Equal(t, "A777", *updated.MedicalRecordNo)

	// Re-saving the patient's own number is not a collision
	_, err = svc.UpdatePatient(models.UserTypeHospitalAdmin, hospital.ID, patient.ID, PatientUpdate{MedicalRecordNo: &mrn})
	assert.NoError(t, err)

	// Another active patient's number is
	taken := "A002"
	_, err = svc.UpdatePatient(models.UserTypeHospitalAdmin, hospital.ID, patient.ID, PatientUpdate{MedicalRecordNo: &taken})
	assert.ErrorIs(t, err, ErrDuplicateMedicalRecordNumber)
}

func TestUpdatePatientMRNFreeInOtherHospital(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)
	hospital := seedHospital(t, db)
	other := &models.Hospital{Code: "HSP-002", Name: "Other Clinic"}
	require.NoError(t, db.Create(other).Error)
	patient := seedPatient(t, db, hospital.ID, "A001")
	seedPatient(t, db, other.ID, "B100")

	// Uniqueness is per hospital, so another hospital's number is free
	mrn := "B100"
	_, err := svc.UpdatePatient(models.UserTypeSystemAdmin, hospital.ID, patient.ID, PatientUpdate{MedicalRecordNo: &mrn})
	assert.NoError(t, err)
}

func TestUpdatePatientNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)
	hospital := seedHospital(t, db)
	admin := seedAdmin(t, db, hospital.ID, models.UserTypeHospitalAdmin)

	name := "Sato"
	_, err := svc.UpdatePatient(models.UserTypeHospitalAdmin, hospital.ID, 9999, PatientUpdate{LastName: &name})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	// Admin accounts are not patients
	_, err = svc.UpdatePatient(models.UserTypeHospitalAdmin, hospital.ID, admin.ID, PatientUpdate{LastName: &name})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestGetPatientVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)
	hospital := seedHospital(t, db)
	other := &models.Hospital{Code: "HSP-002", Name: "Other Clinic"}
	require.NoError(t, db.Create(other).Error)
	patient := seedPatient(t, db, hospital.ID, "A001")
	stranger := seedPatient(t, db, hospital.ID, "A002")

	_, err := svc.GetPatient(patient.ID, models.UserTypePatient, hospital.ID, patient.ID)
	assert.NoError(t, err)

	_, err = svc.GetPatient(stranger.ID, models.UserTypePatient, hospital.ID, patient.ID)
	assert.ErrorIs(t, err, ErrAuthorization)

	_, err = svc.GetPatient(1, models.UserTypeHospitalAdmin, hospital.ID, patient.ID)
	assert.NoError(t, err)

	_, err = svc.GetPatient(1, models.UserTypeHospitalAdmin, other.ID, patient.ID)
	assert.ErrorIs(t, err, ErrAuthorization)

	_, err = svc.GetPatient(1, models.UserTypeSystemAdmin, other.ID, patient.ID)
	assert.NoError(t, err)
}

func TestListPatientsAdminOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)
	hospital := seedHospital(t, db)

	_, err := svc.ListPatients(models.UserTypePatient, hospital.ID, "", 10)
	assert.ErrorIs(t, err, ErrAuthorization)
}

func TestListPatientsPagination(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)
	hospital := seedHospital(t, db)

	// Five patients with distinct last reservation markers, most recent first
	// in the expected listing order.
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := seedPatient(t, db, hospital.ID, fmt.Sprintf("P%03d", i))
		at := base.Add(time.Duration(i) * 24 * time.Hour)
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", p.ID).Update("last_reserve_date", at).Error)
	}

	page, err := svc.ListPatients(models.UserTypeHospitalAdmin, hospital.ID, "", 2)
	require.NoError(t, err)
	require.Len(t, page.Patients, 2)
	require.NotEmpty(t, page.NextCursor)
	assert.Equal(t, "P004", *page.Patients[0].MedicalRecordNo)
	assert.Equal(t, "P003", *page.Patients[1].MedicalRecordNo)

	page, err = svc.ListPatients(models.UserTypeHospitalAdmin, hospital.ID, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Patients, 2)
	assert.Equal(t, "P002", *page.Patients[0].MedicalRecordNo)
	assert.Equal(t, "P001", *page.Patients[1].MedicalRecordNo)

	page, err = svc.ListPatients(models.UserTypeHospitalAdmin, hospital.ID, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Patients, 1)
	assert.Equal(t, "P000", *page.Patients[0].MedicalRecordNo)
	assert.Empty(t, page.NextCursor)
}

func TestListPatientsScopedToHospital(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)
	hospital := seedHospital(t, db)
	other := &models.Hospital{Code: "HSP-002", Name: "Other Clinic"}
	require.NoError(t, db.Create(other).Error)
	seedPatient(t, db, hospital.ID, "A001")
	seedPatient(t, db, other.ID, "B001")

	page, err := svc.ListPatients(models.UserTypeHospitalAdmin, hospital.ID, "", 10)
	require.NoError(t, err)
	require.Len(t, page.Patients, 1)
	assert.Equal(t, "A001", *page.Patients[0].MedicalRecordNo)
}

func TestListPatientsInvalidCursor(t *testing.T) {
	db := newTestDB(t)
	svc := newPatientService(t, db)
	hospital := seedHospital(t, db)

	_, err := svc.ListPatients(models.UserTypeHospitalAdmin, hospital.ID, "not a cursor!!", 10)
	assert.ErrorIs(t, err, cursor.ErrInvalidCursor)
}
