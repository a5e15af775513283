package mysql

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/kenawards/reg-membership-service/internal/entities"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
)

func (m *mysqlConnector) CreatePaymentRequest(ctx context.Context, pr *entities.PaymentRequest) error {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	if pr.Status == "" {
		pr.Status = entities.PaymentStatusPending
	}

	result := m.db.WithContext(tCtx).Create(pr)

	return result.Error
}

func (m *mysqlConnector) UpdatePaymentRequest(ctx context.Context, pr *entities.PaymentRequest) error {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	res := m.db.WithContext(tCtx).Save(pr)

	return res.Error
}

func (m *mysqlConnector) GetPendingPaymentRequestByIdentity(ctx context.Context, fullName, awardType string, awardYear int) (*entities.PaymentRequest, error) {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	var pr entities.PaymentRequest
	res := m.db.WithContext(tCtx).Where(&entities.PaymentRequest{
		FullName:  fullName,
		AwardType: awardType,
		AwardYear: awardYear,
		Status:    entities.PaymentStatusPending,
	}).First(&pr)

	if res.Error != nil {
		return nil, wrapNotFound(res.Error)
	}

	return &pr, nil
}

// GetPaymentRequestByCheckoutRequestID takes a row lock, so concurrent
// callback deliveries for the same checkout request serialize on it.
func (m *mysqlConnector) GetPaymentRequestByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*entities.PaymentRequest, error) {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	var pr entities.PaymentRequest
	res := m.db.WithContext(tCtx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(&entities.PaymentRequest{CheckoutRequestID: checkoutRequestID}).
		First(&pr)

	if res.Error != nil {
		return nil, wrapNotFound(res.Error)
	}

	return &pr, nil
}

func (m *mysqlConnector) MarkPaymentRequestPaid(ctx context.Context, pr *entities.PaymentRequest) error {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	if !pr.Status.CanTransitionTo(entities.PaymentStatusPaid) {
		return database.ErrAlreadyPaid
	}

	// guarded update so a concurrent transition cannot be overwritten
	res := m.db.WithContext(tCtx).
		Model(&entities.PaymentRequest{}).
		Where("id = ? AND status = ?", pr.ID, entities.PaymentStatusPending).
		Update("status", entities.PaymentStatusPaid)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return database.ErrAlreadyPaid
	}

	pr.Status = entities.PaymentStatusPaid
	return nil
}
