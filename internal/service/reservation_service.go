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

// Slot capacities. A patient booking for themselves needs the slot empty;
// a hospital admin may double up to two reservations on one slot.
const (
	selfBookingCapacity  = 1
	adminBookingCapacity = 2
)

type ReservationService struct {
	db              *gorm.DB
	policy          schedule.Policy
	reservationRepo *repository.ReservationRepository
	holidayRepo     *repository.HolidayRepository
	userRepo        *repository.UserRepository
	auditRepo       *repository.AuditRepository
	logger          *zap.Logger

	// now is swapped out in tests; availability and lead-time filtering
	// hang off it.
	now func() time.Time
}

func NewReservationService(
	db *gorm.DB,
	policy schedule.Policy,
	reservationRepo *repository.ReservationRepository,
	holidayRepo *repository.HolidayRepository,
	userRepo *repository.UserRepository,
	auditRepo *repository.AuditRepository,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		db:              db,
		policy:          policy,
		reservationRepo: reservationRepo,
		holidayRepo:     holidayRepo,
		userRepo:        userRepo,
		auditRepo:       auditRepo,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// AvailableSlots returns the open slots of a hospital over the rolling
// booking window, keyed by date. Holiday dates and fully filtered dates are
// absent from the result. Availability is recomputed from storage on every
// call; caching slot state across requests would reintroduce the staleness
// that causes double bookings.
func (s *ReservationService) AvailableSlots(hospitalID uint) (map[string][]string, error) {
	asOf := s.now()
	dates := s.policy.Window(asOf)

	holidayDates, err := s.holidayRepo.DatesIn(hospitalID, dates)
	if err != nil {
		return nil, fmt.Errorf("read holidays: %w", err)
	}
	holidays := make(map[string]struct{}, len(holidayDates))
	for _, d := range holidayDates {
		holidays[schedule.DateOf(d).Format(schedule.DateLayout)] = struct{}{}
	}

	reservations, err := s.reservationRepo.ActiveSlots(hospitalID, dates)
	if err != nil {
		return nil, fmt.Errorf("read booked slots: %w", err)
	}
	booked := make(map[string]map[string]struct{})
	for _, r := range reservations {
		key := schedule.DateOf(r.ReservationDate).Format(schedule.DateLayout)
		if booked[key] == nil {
			booked[key] = make(map[string]struct{})
		}
		booked[key][r.ReservationTime] = struct{}{}
	}

	return schedule.Available(s.policy, asOf, holidays, booked)
}

// BookSelf books a slot for the acting patient at their own hospital.
// The holiday check, the capacity-1 occupancy check, the insert and the
// last-reservation marker update run in one transaction; the occupancy
// count is taken under lock so concurrent attempts at the same slot cannot
// both see it empty.
func (s *ReservationService) BookSelf(patientID, hospitalID uint, date time.Time, timeOfDay, treatment string) (*models.Reservation, error) {
	if !s.policy.OnGrid(timeOfDay) {
		return nil, ErrSlotUnavailable
	}
	date = schedule.DateOf(date)

	var reservation *models.Reservation
	err := repository.InTransaction(s.db, func(tx *gorm.DB) error {
		closed, err := s.holidayRepo.WithTx(tx).IsHoliday(hospitalID, date)
		if err != nil {
			return fmt.Errorf("check holiday: %w", err)
		}
		if closed {
			return ErrHolidayConflict
		}

		count, err := s.reservationRepo.WithTx(tx).CountActiveAtForUpdate(hospitalID, date, timeOfDay)
		if err != nil {
			return fmt.Errorf("count reservations: %w", err)
		}
		if count >= selfBookingCapacity {
			return ErrSlotUnavailable
		}

		reservation = &models.Reservation{
			HospitalID:      hospitalID,
			UserID:          patientID,
			ReservationDate: date,
			ReservationTime: timeOfDay,
			Treatment:       treatment,
		}
		if err := s.reservationRepo.WithTx(tx).CreateReservation(reservation); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}

		slotAt, err := schedule.SlotTime(date, timeOfDay)
		if err != nil {
			return err
		}
		if err := s.userRepo.WithTx(tx).UpdateLastReserveDate(patientID, slotAt); err != nil {
			return fmt.Errorf("update last reserve date: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logReservation("reservation_create", patientID, reservation)
	return reservation, nil
}

// BookForPatient books a slot on behalf of a patient identified by medical
// record number within the actor's hospital. Only hospital or system admins
// may call it, and the slot may hold up to two active reservations on this
// path.
func (s *ReservationService) BookForPatient(actorID uint, actorType string, actorHospitalID uint, mrn string, date time.Time, timeOfDay, treatment string) (*models.Reservation, error) {
	if actorType != models.UserTypeHospitalAdmin && actorType != models.UserTypeSystemAdmin {
		return nil, ErrAuthorization
	}
	if !s.policy.OnGrid(timeOfDay) {
		return nil, ErrSlotUnavailable
	}
	date = schedule.DateOf(date)

	var reservation *models.Reservation
	err := repository.InTransaction(s.db, func(tx *gorm.DB) error {
		patient, err := s.userRepo.WithTx(tx).FindActivePatientByMRN(actorHospitalID, mrn)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return fmt.Errorf("find patient: %w", err)
		}

		closed, err := s.holidayRepo.WithTx(tx).IsHoliday(actorHospitalID, date)
		if err != nil {
			return fmt.Errorf("check holiday: %w", err)
		}
		if closed {
			return ErrHolidayConflict
		}

		count, err := s.reservationRepo.WithTx(tx).CountActiveAtForUpdate(actorHospitalID, date, timeOfDay)
		if err != nil {
			return fmt.Errorf("count reservations: %w", err)
		}
		if count >= adminBookingCapacity {
			return ErrSlotFullyBooked
		}

		reservation = &models.Reservation{
			HospitalID:      actorHospitalID,
			UserID:          patient.ID,
			ReservationDate: date,
			ReservationTime: timeOfDay,
			Treatment:       treatment,
		}
		if err := s.reservationRepo.WithTx(tx).CreateReservation(reservation); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}

		slotAt, err := schedule.SlotTime(date, timeOfDay)
		if err != nil {
			return err
		}
		if err := s.userRepo.WithTx(tx).UpdateLastReserveDate(patient.ID, slotAt); err != nil {
			return fmt.Errorf("update last reserve date: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logReservation("reservation_create_admin", actorID, reservation)
	return reservation, nil
}

// Cancel marks a reservation cancelled. Allowed for the reservation's own
// patient, a system admin, or a hospital admin of the reservation's
// hospital. The row is locked for the duration so a racing booking or
// second cancel on the same row cannot interleave. A reservation that is
// already cancelled is simply not found.
func (s *ReservationService) Cancel(actorID uint, actorType string, actorHospitalID uint, reservationID uint) error {
	err := repository.InTransaction(s.db, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.WithTx(tx).FindActiveByIDForUpdate(reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("find reservation: %w", err)
		}

		if !s.mayAccess(reservation, actorID, actorType, actorHospitalID) {
			return ErrAuthorization
		}

		cancelDate := schedule.DateOf(s.now())
		if err := s.reservationRepo.WithTx(tx).Cancel(reservation.ID, cancelDate); err != nil {
			return fmt.Errorf("cancel reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	actorIDPtr := &actorID
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, "reservation_cancel", fmt.Sprintf("Cancelled reservation ID %d", reservationID))
	s.logger.Info("Reservation cancelled",
		zap.Uint("reservation_id", reservationID),
		zap.Uint("actor_id", actorID),
	)
	return nil
}

// GetReservation returns one active reservation, visible to its own patient
// and to admins of its hospital.
func (s *ReservationService) GetReservation(actorID uint, actorType string, actorHospitalID uint, reservationID uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindActiveByID(reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if !s.mayAccess(reservation, actorID, actorType, actorHospitalID) {
		return nil, ErrAuthorization
	}
	return reservation, nil
}

// ListReservations returns all active reservations of the actor's hospital.
// Admin only.
func (s *ReservationService) ListReservations(actorType string, actorHospitalID uint) ([]models.Reservation, error) {
	if actorType != models.UserTypeHospitalAdmin && actorType != models.UserTypeSystemAdmin {
		return nil, ErrAuthorization
	}
	return s.reservationRepo.ListActiveByHospital(actorHospitalID)
}

// NextReservation returns the user's soonest upcoming active reservation,
// or nil when none exists.
func (s *ReservationService) NextReservation(userID uint) (*models.Reservation, error) {
	asOf := s.now()
	reservation, err := s.reservationRepo.FindNextForUser(userID, schedule.DateOf(asOf), asOf.Format(schedule.TimeLayout))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return reservation, nil
}

func (s *ReservationService) mayAccess(reservation *models.Reservation, actorID uint, actorType string, actorHospitalID uint) bool {
	switch {
	case reservation.UserID == actorID:
		return true
	case actorType == models.UserTypeSystemAdmin:
		return true
	case actorType == models.UserTypeHospitalAdmin && reservation.HospitalID == actorHospitalID:
		return true
	}
	return false
}

func (s *ReservationService) logReservation(action string, actorID uint, reservation *models.Reservation) {
	actorIDPtr := &actorID
	details := fmt.Sprintf("Reservation ID %d at %s %s (hospital ID %d)",
		reservation.ID,
		reservation.ReservationDate.Format(schedule.DateLayout),
		reservation.ReservationTime,
		reservation.HospitalID,
	)
	_ = s.auditRepo.CreateAuditLog(actorIDPtr, action, details)

	s.logger.Info("Reservation created",
		zap.Uint("reservation_id", reservation.ID),
		zap.Uint("hospital_id", reservation.HospitalID),
		zap.Uint("patient_id", reservation.UserID),
		zap.String("date", reservation.ReservationDate.Format(schedule.DateLayout)),
		zap.String("time", reservation.ReservationTime),
	)
}
