package handler

import (
	"net/http"
	"strconv"

	"clinic-reservation-backend/internal/middleware"
	"clinic-reservation-backend/internal/schedule"
	"clinic-reservation-backend/internal/service"
	"clinic-reservation-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	hospitalService *service.HospitalService
}

func NewHospitalHandler(hospitalService *service.HospitalService) *HospitalHandler {
	return &HospitalHandler{hospitalService: hospitalService}
}

type updateHospitalRequest struct {
	Name                    string `json:"name" binding:"required"`
	Website                 string `json:"website"`
	PostalCode              string `json:"postal_code"`
	Address                 string `json:"address"`
	Phone                   string `json:"phone"`
	Fax                     string `json:"fax"`
	ReservationPolicyHeader string `json:"reservation_policy_header"`
	ReservationPolicyBody   string `json:"reservation_policy_body"`
	Treatment               string `json:"treatment"`
}

type addHolidayRequest struct {
	HolidayDate string `json:"holiday_date" binding:"required,datetime=2006-01-02"`
}

// GetHospitalByCode returns hospital info by its public code. Public:
// patients look hospitals up before registering.
func (h *HospitalHandler) GetHospitalByCode(c *gin.Context) {
	hospital, err := h.hospitalService.GetHospitalByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, hospital)
}

// UpdateHospital updates the actor's own hospital (admin only)
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	var req updateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, userType, hospitalID := middleware.Actor(c)

	hospital, err := h.hospitalService.GetHospital(hospitalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	hospital.Name = req.Name
	hospital.Website = req.Website
	hospital.PostalCode = req.PostalCode
	hospital.Address = req.Address
	hospital.Phone = req.Phone
	hospital.Fax = req.Fax
	hospital.ReservationPolicyHeader = req.ReservationPolicyHeader
	hospital.ReservationPolicyBody = req.ReservationPolicyBody
	hospital.Treatment = req.Treatment

	if err := h.hospitalService.UpdateHospital(userID, userType, hospitalID, hospital); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, hospital)
}

// ListHolidays returns the actor's hospital holidays
func (h *HospitalHandler) ListHolidays(c *gin.Context) {
	_, _, hospitalID := middleware.Actor(c)

	holidays, err := h.hospitalService.ListHolidays(hospitalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"holidays": holidays,
		"count":    len(holidays),
	})
}

// AddHoliday marks a date as closed for the actor's hospital (admin only)
func (h *HospitalHandler) AddHoliday(c *gin.Context) {
	var req addHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	date, err := schedule.ParseDate(req.HolidayDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid holiday date")
		return
	}

	userID, userType, hospitalID := middleware.Actor(c)

	holiday, err := h.hospitalService.AddHoliday(userID, userType, hospitalID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, holiday)
}

// DeleteHoliday removes a holiday of the actor's hospital (admin only)
func (h *HospitalHandler) DeleteHoliday(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("holiday_id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid holiday ID")
		return
	}

	userID, userType, hospitalID := middleware.Actor(c)

	if err := h.hospitalService.DeleteHoliday(userID, userType, hospitalID, uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.MessageResponse(c, "Holiday deleted")
}
