package service

import "errors"

// Terminal, user-facing outcomes of the booking and account operations.
// Handlers map each one to a distinct HTTP status and localized message;
// none are retried internally. Anything else bubbling out of a service is
// a storage failure.
var (
	ErrHolidayConflict              = errors.New("reservation date is a holiday")
	ErrSlotUnavailable              = errors.New("time slot is not available")
	ErrSlotFullyBooked              = errors.New("time slot is fully booked")
	ErrPatientNotFound              = errors.New("patient not found")
	ErrAuthorization                = errors.New("not authorized")
	ErrReservationNotFound          = errors.New("reservation not found")
	ErrHospitalNotFound             = errors.New("hospital not found")
	ErrHolidayNotFound              = errors.New("holiday not found")
	ErrHolidayExists                = errors.New("holiday already exists")
	ErrDuplicateMedicalRecordNumber = errors.New("medical record number already in use")
	ErrInvalidCredentials           = errors.New("invalid credentials")
	ErrUserNotFound                 = errors.New("user not found")
)
