package inmemory

import (
	"context"
	"errors"
	"time"

	"github.com/kenawards/reg-membership-service/internal/entities"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
)

func (m *inmemoryProvider) CreatePaymentRequest(ctx context.Context, pr *entities.PaymentRequest) error {
	m.lock()
	defer m.unlock()

	if pr.ID != 0 {
		return errors.New("create needs a new payment request")
	}

	if pr.Status == "" {
		pr.Status = entities.PaymentStatusPending
	}

	m.state.requestSeq++
	pr.ID = m.state.requestSeq

	if pr.CreatedAt.IsZero() {
		pr.CreatedAt = time.Now()
	}

	m.state.paymentRequests[pr.ID] = *pr
	return nil
}

func (m *inmemoryProvider) UpdatePaymentRequest(ctx context.Context, pr *entities.PaymentRequest) error {
	m.lock()
	defer m.unlock()

	_, ok := m.state.paymentRequests[pr.ID]
	if !ok {
		return database.ErrNotFound
	}

	pr.UpdatedAt = time.Now()
	m.state.paymentRequests[pr.ID] = *pr
	return nil
}

func (m *inmemoryProvider) GetPendingPaymentRequestByIdentity(ctx context.Context, fullName, awardType string, awardYear int) (*entities.PaymentRequest, error) {
	m.lock()
	defer m.unlock()

	for _, pr := range m.state.paymentRequests {
		if pr.FullName == fullName && pr.AwardType == awardType && pr.AwardYear == awardYear &&
			pr.Status == entities.PaymentStatusPending {
			copy := pr
			return &copy, nil
		}
	}

	return nil, database.ErrNotFound
}

func (m *inmemoryProvider) GetPaymentRequestByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*entities.PaymentRequest, error) {
	m.lock()
	defer m.unlock()

	if checkoutRequestID == "" {
		return nil, database.ErrNotFound
	}

	for _, pr := range m.state.paymentRequests {
		if pr.CheckoutRequestID == checkoutRequestID {
			copy := pr
			return &copy, nil
		}
	}

	return nil, database.ErrNotFound
}

func (m *inmemoryProvider) MarkPaymentRequestPaid(ctx context.Context, pr *entities.PaymentRequest) error {
	m.lock()
	defer m.unlock()

	cur, ok := m.state.paymentRequests[pr.ID]
	if !ok {
		return database.ErrNotFound
	}

	if !cur.Status.CanTransitionTo(entities.PaymentStatusPaid) {
		return database.ErrAlreadyPaid
	}

	cur.Status = entities.PaymentStatusPaid
	cur.UpdatedAt = time.Now()
	m.state.paymentRequests[cur.ID] = cur

	pr.Status = entities.PaymentStatusPaid
	return nil
}
