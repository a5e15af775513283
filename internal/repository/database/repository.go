package database

import (
	"context"
	"errors"
	"time"

	"github.com/kenawards/reg-membership-service/internal/entities"
)

var (
	// ErrNotFound is returned when no row matches the given criteria.
	ErrNotFound = errors.New("no matching row in database")
	// ErrAlreadyPaid is returned when a payment request has already left the pending state.
	ErrAlreadyPaid = errors.New("the payment request is already paid")
)

type Repository interface {
	Migrate() error

	// RunInTransaction runs fn against a repository handle bound to one
	// transaction. Any error returned by fn rolls the transaction back.
	RunInTransaction(ctx context.Context, fn func(repo Repository) error) error

	MemberCRUD
	PaymentRequestCRUD
}

type MemberCRUD interface {
	CreateMember(ctx context.Context, m *entities.Member) error
	UpdateMember(ctx context.Context, m *entities.Member) error
	GetMemberByIdentity(ctx context.Context, fullName, awardType string, awardYear int) (*entities.Member, error)

	// FindActiveMembersByName returns members with a paid lifetime
	// membership or a paid monthly membership not expired at the given date.
	FindActiveMembersByName(ctx context.Context, fullName string, date time.Time) ([]entities.Member, error)
}

type PaymentRequestCRUD interface {
	CreatePaymentRequest(ctx context.Context, pr *entities.PaymentRequest) error
	UpdatePaymentRequest(ctx context.Context, pr *entities.PaymentRequest) error
	GetPendingPaymentRequestByIdentity(ctx context.Context, fullName, awardType string, awardYear int) (*entities.PaymentRequest, error)

	// GetPaymentRequestByCheckoutRequestID locks the row for the duration
	// of the surrounding transaction when called inside RunInTransaction.
	GetPaymentRequestByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*entities.PaymentRequest, error)

	// MarkPaymentRequestPaid performs the pending -> paid transition and
	// fails with ErrAlreadyPaid if the row has left the pending state.
	MarkPaymentRequestPaid(ctx context.Context, pr *entities.PaymentRequest) error
}
