package handler

import (
	"net/http"
	"time"

	"clinic-reservation-backend/internal/middleware"
	"clinic-reservation-backend/internal/models"
	"clinic-reservation-backend/internal/schedule"
	"clinic-reservation-backend/internal/service"
	"clinic-reservation-backend/pkg/hashid"
	"clinic-reservation-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationService *service.ReservationService
	ids                *hashid.Codec
}

func NewReservationHandler(reservationService *service.ReservationService, ids *hashid.Codec) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		ids:                ids,
	}
}

type createReservationRequest struct {
	ReservationDate string `json:"reservation_date" binding:"required,datetime=2006-01-02"`
	ReservationTime string `json:"reservation_time" binding:"required,timeofday"`
	Treatment       string `json:"treatment"`
}

type adminReservationRequest struct {
	MedicalRecordNo string `json:"medical_record_no" binding:"required"`
	ReservationDate string `json:"reservation_date" binding:"required,datetime=2006-01-02"`
	ReservationTime string `json:"reservation_time" binding:"required,timeofday"`
	Treatment       string `json:"treatment"`
}

type reservationResponse struct {
	ID              string     `json:"id"`
	ReservationDate string     `json:"reservation_date"`
	ReservationTime string     `json:"reservation_time"`
	Treatment       string     `json:"treatment,omitempty"`
	CancelDate      *time.Time `json:"cancel_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (h *ReservationHandler) toResponse(r *models.Reservation) reservationResponse {
	publicID, _ := h.ids.Encode(r.ID)
	return reservationResponse{
		ID:              publicID,
		ReservationDate: r.ReservationDate.Format(schedule.DateLayout),
		ReservationTime: r.ReservationTime,
		Treatment:       r.Treatment,
		CancelDate:      r.CancelDate,
		CreatedAt:       r.CreatedAt,
	}
}

// GetAvailableSlots returns the open slots of the caller's hospital over
// the rolling booking window
func (h *ReservationHandler) GetAvailableSlots(c *gin.Context) {
	_, _, hospitalID := middleware.Actor(c)

	slots, err := h.reservationService.AvailableSlots(hospitalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"available_slots": slots})
}

// CreateReservation books a slot for the authenticated patient
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, userType, hospitalID := middleware.Actor(c)
	if userType != models.UserTypePatient {
		utils.ErrorResponse(c, http.StatusForbidden, "User is not a patient")
		return
	}

	date, err := schedule.ParseDate(req.ReservationDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid reservation date")
		return
	}

	reservation, err := h.reservationService.BookSelf(userID, hospitalID, date, req.ReservationTime, req.Treatment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, h.toResponse(reservation))
}

// CreateReservationForPatient books a slot on behalf of a patient located
// by medical record number (admin only)
func (h *ReservationHandler) CreateReservationForPatient(c *gin.Context) {
	var req adminReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, userType, hospitalID := middleware.Actor(c)

	date, err := schedule.ParseDate(req.ReservationDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid reservation date")
		return
	}

	reservation, err := h.reservationService.BookForPatient(userID, userType, hospitalID, req.MedicalRecordNo, date, req.ReservationTime, req.Treatment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, h.toResponse(reservation))
}

// GetReservations lists the active reservations of the actor's hospital
// (admin only)
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	_, userType, hospitalID := middleware.Actor(c)

	reservations, err := h.reservationService.ListReservations(userType, hospitalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]reservationResponse, 0, len(reservations))
	for i := range reservations {
		responses = append(responses, h.toResponse(&reservations[i]))
	}

	utils.SuccessResponse(c, gin.H{
		"reservations": responses,
		"count":        len(responses),
	})
}

// GetMyNextReservation returns the caller's soonest upcoming reservation,
// or null when none exists
func (h *ReservationHandler) GetMyNextReservation(c *gin.Context) {
	userID, _, _ := middleware.Actor(c)

	reservation, err := h.reservationService.NextReservation(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if reservation == nil {
		utils.SuccessResponse(c, nil)
		return
	}

	utils.SuccessResponse(c, h.toResponse(reservation))
}

// GetReservation returns one reservation by public id
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := h.ids.Decode(c.Param("reservation_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Reservation not found")
		return
	}

	userID, userType, hospitalID := middleware.Actor(c)

	reservation, err := h.reservationService.GetReservation(userID, userType, hospitalID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, h.toResponse(reservation))
}

// CancelReservation cancels a reservation by public id
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := h.ids.Decode(c.Param("reservation_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Reservation not found")
		return
	}

	userID, userType, hospitalID := middleware.Actor(c)

	if err := h.reservationService.Cancel(userID, userType, hospitalID, id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, "Reservation cancelled")
}
