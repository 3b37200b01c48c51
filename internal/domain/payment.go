package domain

import (
	"errors"
	"time"
)

var ErrPaymentNotInitiated = errors.New("payment is not in initiated state")

type PaymentStatus int

const (
	PaymentStatusInitiated PaymentStatus = 0
	PaymentStatusPaid      PaymentStatus = 1
	PaymentStatusFailed    PaymentStatus = 2
	PaymentStatusRefunded  PaymentStatus = 3
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusInitiated:
		return "initiated"
	case PaymentStatusPaid:
		return "paid"
	case PaymentStatusFailed:
		return "failed"
	case PaymentStatusRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}

type Payment struct {
	ID                int32
	ReservationID     string
	Amount            float64
	Method            string
	CardHolder        string
	Status            PaymentStatus
	ProviderReference string
	CreatedAt         time.Time
}

func (p *Payment) MarkPaid(providerRef string) error {
	if p.Status != PaymentStatusInitiated {
		return ErrPaymentNotInitiated
	}
	p.Status = PaymentStatusPaid
	p.ProviderReference = providerRef
	return nil
}

func (p *Payment) IsPaid() bool {
	return p != nil && p.Status == PaymentStatusPaid
}
