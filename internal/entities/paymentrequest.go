package entities

import (
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusPaid:
		return true
	}

	return false
}

// CanTransitionTo states the only legal status change, pending -> paid.
// paid is terminal. The repository implementations enforce this, callers
// cannot move a request back to pending.
func (p PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return p == PaymentStatusPending && next == PaymentStatusPaid
}

// PaymentRequest records one push payment attempt. The registration flow
// creates it in status pending and keeps updating the same row while a
// request for the identity tuple is still pending, so there is at most one
// pending row per (full name, award type, award year).
type PaymentRequest struct {
	gorm.Model
	FullName       string         `gorm:"index:idx_request_identity;type:varchar(120) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	School         string         `gorm:"type:varchar(120) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	AwardType      string         `gorm:"index:idx_request_identity;type:varchar(80) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	AwardYear      int            `gorm:"index:idx_request_identity;type:int;NOT NULL"`
	MembershipType MembershipType `gorm:"type:enum('monthly', 'lifetime')"`
	PhoneNumber    string         `gorm:"type:varchar(15) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	Amount         int64          `gorm:"type:bigint;NOT NULL"`
	Status         PaymentStatus  `gorm:"type:enum('pending', 'paid')"`
	// CheckoutRequestID stays empty until the gateway has answered the
	// push initiation, the asynchronous callback is correlated through it.
	CheckoutRequestID string `gorm:"index:idx_checkout_request;type:varchar(80) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;default:NULL"`
}
