package interaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kenawards/reg-membership-service/internal/apierrors"
	"github.com/kenawards/reg-membership-service/internal/entities"
	"github.com/kenawards/reg-membership-service/internal/logging"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
)

type PaymentCallback struct {
	CheckoutRequestID string
	ResultCode        int
	ResultDesc        string
}

// ProcessPaymentCallback runs the whole reconciliation in one transaction.
// The payment request row is locked while it runs, so concurrent deliveries
// for the same checkout request serialize and either all state changes
// commit or none do.
func (s *serviceInteractor) ProcessPaymentCallback(ctx context.Context, cb *PaymentCallback) error {
	logger := logging.LoggerFromContext(ctx)

	if cb.ResultCode != 0 {
		// rejected or cancelled by the payer. Acknowledge as a normal
		// outcome so the provider does not retry the delivery.
		logger.Info("payment for checkout request %s was not completed (result code %d): %s",
			cb.CheckoutRequestID, cb.ResultCode, cb.ResultDesc)
		return nil
	}

	return s.store.RunInTransaction(ctx, func(repo database.Repository) error {
		request, err := repo.GetPaymentRequestByCheckoutRequestID(ctx, cb.CheckoutRequestID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return apierrors.NewNotFound(fmt.Sprintf("payment request for checkout request id %s not found", cb.CheckoutRequestID))
			}
			return err
		}

		if request.Status == entities.PaymentStatusPaid {
			// repeated delivery for a settled payment, acknowledge without changes
			logger.Info("checkout request %s is already settled, nothing to do", cb.CheckoutRequestID)
			return nil
		}

		if err := s.applyMembership(ctx, repo, request); err != nil {
			return err
		}

		return repo.MarkPaymentRequestPaid(ctx, request)
	})
}

func (s *serviceInteractor) applyMembership(ctx context.Context, repo database.Repository, request *entities.PaymentRequest) error {
	member, err := repo.GetMemberByIdentity(ctx, request.FullName, request.AwardType, request.AwardYear)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return err
		}
		member = nil
	}

	if member == nil {
		newMember := entities.Member{
			FullName:       request.FullName,
			School:         request.School,
			AwardType:      request.AwardType,
			AwardYear:      request.AwardYear,
			MembershipType: request.MembershipType,
			Paid:           true,
		}
		if request.MembershipType == entities.MembershipTypeMonthly {
			newMember.ExpiresAt = sql.NullTime{
				Time:  monthlyExpiry(nil, time.Now().UTC()),
				Valid: true,
			}
		}

		return repo.CreateMember(ctx, &newMember)
	}

	member.Paid = true
	if request.MembershipType == entities.MembershipTypeLifetime {
		// lifetime supersedes any monthly expiry
		member.MembershipType = entities.MembershipTypeLifetime
		member.ExpiresAt = sql.NullTime{}
	} else {
		member.ExpiresAt = sql.NullTime{
			Time:  monthlyExpiry(member, time.Now().UTC()),
			Valid: true,
		}
	}

	return repo.UpdateMember(ctx, member)
}

// monthlyExpiry extends a renewal from the current expiry when it is still
// in the future, not from today, so remaining paid time is kept.
func monthlyExpiry(member *entities.Member, now time.Time) time.Time {
	base := now
	if member != nil && member.ExpiresAt.Valid && member.ExpiresAt.Time.After(now) {
		base = member.ExpiresAt.Time
	}

	return base.AddDate(0, 1, 0)
}
