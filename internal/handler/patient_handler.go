package handler

import (
	"net/http"
	"strconv"
	"time"

	"clinic-reservation-backend/internal/middleware"
	"clinic-reservation-backend/internal/models"
	"clinic-reservation-backend/internal/service"
	"clinic-reservation-backend/pkg/hashid"
	"clinic-reservation-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService *service.PatientService
	authService    *service.AuthService
	ids            *hashid.Codec
}

func NewPatientHandler(patientService *service.PatientService, authService *service.AuthService, ids *hashid.Codec) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
		authService:    authService,
		ids:            ids,
	}
}

type registerPatientRequest struct {
	HospitalCode string `json:"hospital_code" binding:"required"`
	LineID       string `json:"line_id" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	Contact      string `json:"contact" binding:"required"`
	Email        string `json:"email"`
}

type updatePatientRequest struct {
	Email           *string `json:"email"`
	LastName        *string `json:"last_name"`
	FirstName       *string `json:"first_name"`
	Contact         *string `json:"contact"`
	MedicalRecordNo *string `json:"medical_record_no"`
}

type patientResponse struct {
	ID              string     `json:"id"`
	UserType        string     `json:"user_type"`
	MedicalRecordNo *string    `json:"medical_record_no,omitempty"`
	LastName        string     `json:"last_name"`
	FirstName       string     `json:"first_name"`
	Contact         string     `json:"contact"`
	Email           *string    `json:"email,omitempty"`
	LastReserveDate *time.Time `json:"last_reserve_date,omitempty"`
}

func (h *PatientHandler) toResponse(u *models.User) patientResponse {
	publicID, _ := h.ids.Encode(u.ID)
	return patientResponse{
		ID:              publicID,
		UserType:        u.UserType,
		MedicalRecordNo: u.MedicalRecordNo,
		LastName:        u.LastName,
		FirstName:       u.FirstName,
		Contact:         u.Contact,
		Email:           u.Email,
		LastReserveDate: u.LastReserveDate,
	}
}

// RegisterPatient registers a patient account against a hospital's public
// code. No authentication: this is the patient's entry point.
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var req registerPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patient, err := h.patientService.RegisterPatient(service.PatientCreate{
		HospitalCode: req.HospitalCode,
		LineID:       req.LineID,
		LastName:     req.LastName,
		FirstName:    req.FirstName,
		Contact:      req.Contact,
		Email:        req.Email,
	})
	if err != nil {
		if err == service.ErrHospitalNotFound {
			utils.ErrorResponse(c, http.StatusNotFound, "Hospital with the given code not found.")
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, h.toResponse(patient))
}

// UpdatePatient updates a patient record (admin only)
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID, err := h.ids.Decode(c.Param("patient_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Patient user not found")
		return
	}

	var req updatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	_, userType, hospitalID := middleware.Actor(c)

	patient, err := h.patientService.UpdatePatient(userType, hospitalID, patientID, service.PatientUpdate{
		Email:           req.Email,
		LastName:        req.LastName,
		FirstName:       req.FirstName,
		Contact:         req.Contact,
		MedicalRecordNo: req.MedicalRecordNo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, h.toResponse(patient))
}

// GetPatient returns one patient record
func (h *PatientHandler) GetPatient(c *gin.Context) {
	patientID, err := h.ids.Decode(c.Param("patient_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Patient user not found")
		return
	}

	userID, userType, hospitalID := middleware.Actor(c)

	patient, err := h.patientService.GetPatient(userID, userType, hospitalID, patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, h.toResponse(patient))
}

// ListPatients returns one cursor page of the hospital's patients (admin
// only), most recently reserved first
func (h *PatientHandler) ListPatients(c *gin.Context) {
	_, userType, hospitalID := middleware.Actor(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	page, err := h.patientService.ListPatients(userType, hospitalID, c.Query("cursor"), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	patients := make([]patientResponse, 0, len(page.Patients))
	for i := range page.Patients {
		patients = append(patients, h.toResponse(&page.Patients[i]))
	}

	utils.SuccessResponse(c, gin.H{
		"patients":    patients,
		"next_cursor": page.NextCursor,
	})
}

// GetMe returns the authenticated user's own record
func (h *PatientHandler) GetMe(c *gin.Context) {
	userID, _, _ := middleware.Actor(c)

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, h.toResponse(user))
}
