package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidStatusTransition = errors.New("invalid reservation status transition")

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

var reservationStatusCodes = map[ReservationStatus]int{
	ReservationStatusPending:   0,
	ReservationStatusConfirmed: 1,
	ReservationStatusCancelled: 2,
	ReservationStatusCompleted: 3,
}

// Code is the value persisted in reservations.status_code
func (s ReservationStatus) Code() int {
	if code, ok := reservationStatusCodes[s]; ok {
		return code
	}
	return -1
}

// ReservationStatusFromCode maps a persisted status code back to its status
func ReservationStatusFromCode(code int) (ReservationStatus, error) {
	for status, c := range reservationStatusCodes {
		if c == code {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown reservation status code %d", code)
}

type ReservationItem struct {
	ID            int32
	ReservationID string
	ToolID        int32
	ToolName      string
	StartDate     time.Time
	EndDate       time.Time
	Quantity      int
	DurationDays  int
	UnitPrice     float64 // price per day
	TotalPrice    float64
}

type Reservation struct {
	ID              string
	UserID          string
	ReservationDate time.Time
	Status          ReservationStatus
	TotalAmount     float64
	Items           []ReservationItem
}

// CalculateTotal sums the item totals
func (r *Reservation) CalculateTotal() float64 {
	var total float64
	for _, it := range r.Items {
		total += it.TotalPrice
	}
	return total
}

// Period returns the earliest start and latest end over the items
func (r *Reservation) Period() (time.Time, time.Time) {
	var start, end time.Time
	for i, it := range r.Items {
		if i == 0 || it.StartDate.Before(start) {
			start = it.StartDate
		}
		if i == 0 || it.EndDate.After(end) {
			end = it.EndDate
		}
	}
	return start, end
}

func (r *Reservation) Confirm() error {
	if r.Status != ReservationStatusPending {
		return fmt.Errorf("%w: cannot confirm a %s reservation", ErrInvalidStatusTransition, r.Status)
	}
	r.Status = ReservationStatusConfirmed
	return nil
}

func (r *Reservation) Cancel() error {
	if r.Status != ReservationStatusPending && r.Status != ReservationStatusConfirmed {
		return fmt.Errorf("%w: cannot cancel a %s reservation", ErrInvalidStatusTransition, r.Status)
	}
	r.Status = ReservationStatusCancelled
	return nil
}

func (r *Reservation) Complete() error {
	if r.Status != ReservationStatusConfirmed {
		return fmt.Errorf("%w: cannot complete a %s reservation", ErrInvalidStatusTransition, r.Status)
	}
	r.Status = ReservationStatusCompleted
	return nil
}
