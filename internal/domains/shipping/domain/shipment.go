package domain

import (
	"errors"
	"time"
)

// Status enumerates shipment progression.
type Status string

const (
	// StatusCreated only exists between the repository create and the first status update.
	StatusCreated    Status = "created"
	StatusInProgress Status = "in progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo enforces created -> in progress -> completed|failed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusCreated:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// ShippingType names a supported carrier.
type ShippingType string

const (
	TypeNovaPoshta   ShippingType = "Нова Пошта"
	TypeUkrposhta    ShippingType = "Укр Пошта"
	TypeMeestExpress ShippingType = "Meest Express"
	TypeSelfPickup   ShippingType = "Самовивіз"
)

var supportedTypes = []ShippingType{TypeNovaPoshta, TypeUkrposhta, TypeMeestExpress, TypeSelfPickup}

var (
	ErrUnsupportedShippingType = errors.New("shipping type is not available")
	ErrInvalidDueDate          = errors.New("shipping due datetime must be greater than datetime now")
	ErrInvalidTransition       = errors.New("shipment status transition is not allowed")
)

// SupportedTypes returns the carriers accepted by ValidateShippingType.
func SupportedTypes() []ShippingType {
	return append([]ShippingType(nil), supportedTypes...)
}

func ValidateShippingType(t ShippingType) error {
	for _, supported := range supportedTypes {
		if t == supported {
			return nil
		}
	}
	return ErrUnsupportedShippingType
}

// ValidateDueDate requires the due date to be strictly after now.
func ValidateDueDate(due, now time.Time) error {
	if !due.After(now) {
		return ErrInvalidDueDate
	}
	return nil
}

// Shipment references a snapshot of an order's product identifiers.
type Shipment struct {
	ID         string
	OrderID    string
	ProductIDs []string
	Type       ShippingType
	DueDate    time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Resolve picks the terminal status a shipment reaches when processed at now:
// a due date already passed fails the shipment, otherwise it completes.
func (s *Shipment) Resolve(now time.Time) Status {
	if !s.DueDate.After(now) {
		return StatusFailed
	}
	return StatusCompleted
}
