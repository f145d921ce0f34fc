package handler

import (
	"errors"
	"net/http"

	"clinic-reservation-backend/internal/service"
	"clinic-reservation-backend/pkg/cursor"
	"clinic-reservation-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error to its HTTP status and canonical
// client-facing detail string. Messages never echo identifiers supplied by
// the caller, so a probe for medical record numbers learns nothing.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHolidayConflict):
		utils.ErrorResponse(c, http.StatusBadRequest, "Cannot make a reservation on a holiday.")
	case errors.Is(err, service.ErrSlotUnavailable):
		utils.ErrorResponse(c, http.StatusBadRequest, "Requested time slot is not available.")
	case errors.Is(err, service.ErrSlotFullyBooked):
		utils.ErrorResponse(c, http.StatusBadRequest, "Requested time slot is fully booked (2 reservations already exist).")
	case errors.Is(err, service.ErrPatientNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Patient not found in this hospital")
	case errors.Is(err, service.ErrAuthorization):
		utils.ErrorResponse(c, http.StatusForbidden, "Not authorized")
	case errors.Is(err, service.ErrReservationNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Reservation not found")
	case errors.Is(err, service.ErrHospitalNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Hospital not found")
	case errors.Is(err, service.ErrHolidayNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Holiday not found")
	case errors.Is(err, service.ErrHolidayExists):
		utils.ErrorResponse(c, http.StatusBadRequest, "Holiday already exists for this date.")
	case errors.Is(err, service.ErrDuplicateMedicalRecordNumber):
		utils.ErrorResponse(c, http.StatusBadRequest, "Medical record number already exists for another patient in this hospital.")
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Incorrect username or password")
	case errors.Is(err, service.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Patient user not found")
	case errors.Is(err, cursor.ErrInvalidCursor):
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid cursor")
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
