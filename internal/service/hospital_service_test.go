package service

import (
	"testing"

	"clinic-reservation-backend/internal/models"
	"clinic-reservation-backend/internal/repository"
	"clinic-reservation-backend/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newHospitalService(t *testing.T, db *gorm.DB) *HospitalService {
	t.Helper()
	return NewHospitalService(
		repository.NewHospitalRepo(db),
		repository.NewHolidayRepo(db),
		repository.NewAuditRepo(db),
		zap.NewNop(),
	)
}

func TestAddHoliday(t *testing.T) {
	db := newTestDB(t)
	svc := newHospitalService(t, db)
	hospital := seedHospital(t, db)
	admin := seedAdmin(t, db, hospital.ID, models.UserTypeHospitalAdmin)

	holiday, err := svc.AddHoliday(admin.ID, admin.UserType, hospital.ID, mustDate(t, "2024-06-10"))
	require.NoError(t, err)
	require.NotZero(t, holiday.ID)
	assert.Equal(t, "2024-06-10", holiday.HolidayDate.Format(schedule.DateLayout))

	holidays, err := svc.ListHolidays(hospital.ID)
	require.NoError(t, err)
	assert.Len(t, holidays, 1)
}

func TestAddHolidayRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newHospitalService(t, db)
	hospital := seedHospital(t, db)
	patient := seedPatient(t, db, hospital.ID, "A001")

	_, err := svc.AddHoliday(patient.ID, patient.UserType, hospital.ID, mustDate(t, "2024-06-10"))
	assert.ErrorIs(t, err, ErrAuthorization)
}

func TestAddHolidayAlreadyActive(t *testing.T) {
	db := newTestDB(t)
	svc := newHospitalService(t, db)
	hospital := seedHospital(t, db)
	admin := seedAdmin(t, db, hospital.ID, models.UserTypeHospitalAdmin)

	_, err := svc.AddHoliday(admin.ID, admin.UserType, hospital.ID, mustDate(t, "2024-06-10"))
	require.NoError(t, err)

	_, err = svc.AddHoliday(admin.ID, admin.UserType, hospital.ID, mustDate(t, "2024-06-10"))
	assert.ErrorIs(t, err, ErrHolidayExists)
}

func TestAddHolidayRevivesDeletedDate(t *testing.T) {
	db := newTestDB(t)
	svc := newHospitalService(t, db)
	hospital := seedHospital(t, db)
	admin := seedAdmin(t, db, hospital.ID, models.UserTypeHospitalAdmin)

	date := mustDate(t, "2024-06-10")
	holiday, err := svc.AddHoliday(admin.ID, admin.UserType, hospital.ID, date)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteHoliday(admin.ID, admin.UserType, hospital.ID, holiday.ID))

	// Deleting and re-adding the same date is routine; the unique index
	// spans the deleted row, so the add must revive it rather than insert.
	revived, err := svc.AddHoliday(admin.ID, admin.UserType, hospital.ID, date)
	require.NoError(t, err)
	assert.Equal(t, holiday.ID, revived.ID)
	assert.False(t, revived.DeletedFlag)

	holidays, err := svc.ListHolidays(hospital.ID)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "2024-06-10", holidays[0].HolidayDate.Format(schedule.DateLayout))
}

func TestDeleteHolidayNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newHospitalService(t, db)
	hospital := seedHospital(t, db)
	other := &models.Hospital{Code: "HSP-002", Name: "Other Clinic"}
	require.NoError(t, db.Create(other).Error)
	admin := seedAdmin(t, db, hospital.ID, models.UserTypeHospitalAdmin)
	otherAdmin := seedAdmin(t, db, other.ID, models.UserTypeHospitalAdmin)

	err := svc.DeleteHoliday(admin.ID, admin.UserType, hospital.ID, 9999)
	assert.ErrorIs(t, err, ErrHolidayNotFound)

	// Another hospital's admin cannot see this holiday
	holiday, err := svc.AddHoliday(admin.ID, admin.UserType, hospital.ID, mustDate(t, "2024-06-10"))
	require.NoError(t, err)
	err = svc.DeleteHoliday(otherAdmin.ID, otherAdmin.UserType, other.ID, holiday.ID)
	assert.ErrorIs(t, err, ErrHolidayNotFound)
}
