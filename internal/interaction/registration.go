package interaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kenawards/reg-membership-service/internal/apierrors"
	"github.com/kenawards/reg-membership-service/internal/entities"
	"github.com/kenawards/reg-membership-service/internal/logging"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
	"github.com/kenawards/reg-membership-service/internal/repository/downstreams/mpesa"
)

type RegistrationRequest struct {
	FullName    string
	School      string
	AwardType   string
	AwardYear   int
	PhoneNumber string
	Amount      int64
}

type RegistrationResult struct {
	PaymentID         uint
	CheckoutRequestID string
	MembershipType    entities.MembershipType
}

const countryPhonePrefix = "254"

// NormalizePhoneNumber rewrites a leading "0" to the country prefix.
// All other formats pass through unchanged.
func NormalizePhoneNumber(phone string) string {
	if strings.HasPrefix(phone, "0") {
		return countryPhonePrefix + phone[1:]
	}

	return phone
}

func (s *serviceInteractor) RegisterForMembership(ctx context.Context, reg *RegistrationRequest) (*RegistrationResult, error) {
	logger := logging.LoggerFromContext(ctx)

	plan, ok := s.plans[reg.Amount]
	if !ok {
		return nil, apierrors.NewBadRequest("invalid amount")
	}

	phone := NormalizePhoneNumber(reg.PhoneNumber)

	var request entities.PaymentRequest
	err := s.store.RunInTransaction(ctx, func(repo database.Repository) error {
		existing, err := repo.GetPendingPaymentRequestByIdentity(ctx, reg.FullName, reg.AwardType, reg.AwardYear)
		if err != nil {
			if !errors.Is(err, database.ErrNotFound) {
				return err
			}

			request = entities.PaymentRequest{
				FullName:       reg.FullName,
				School:         reg.School,
				AwardType:      reg.AwardType,
				AwardYear:      reg.AwardYear,
				MembershipType: plan,
				PhoneNumber:    phone,
				Amount:         reg.Amount,
				Status:         entities.PaymentStatusPending,
			}
			return repo.CreatePaymentRequest(ctx, &request)
		}

		// a pending request for this identity already exists, edit it in
		// place instead of creating a duplicate
		existing.School = reg.School
		existing.MembershipType = plan
		existing.PhoneNumber = phone
		existing.Amount = reg.Amount
		request = *existing

		return repo.UpdatePaymentRequest(ctx, &request)
	})
	if err != nil {
		return nil, err
	}

	// the pending row is committed at this point. A failing gateway call
	// must not undo it, the row stays for a later retry.
	pushResponse, err := s.gatewayClient.InitiateSTKPush(ctx, mpesa.STKPushRequest{
		PhoneNumber: phone,
		Amount:      reg.Amount,
	})
	if err != nil {
		return nil, apierrors.NewInternalServerError(fmt.Sprintf("payment gateway error: %v", err))
	}

	if pushResponse.CheckoutRequestID == "" {
		logger.Error("gateway response for payment request %d did not contain a checkout request id. [response description]: %s",
			request.ID, pushResponse.ResponseDescription)
		return nil, apierrors.NewInternalServerError("gateway did not return a checkout request id")
	}

	request.CheckoutRequestID = pushResponse.CheckoutRequestID
	if err := s.store.UpdatePaymentRequest(ctx, &request); err != nil {
		return nil, err
	}

	logger.Info("initiated payment request %d with checkout request id %s", request.ID, request.CheckoutRequestID)

	return &RegistrationResult{
		PaymentID:         request.ID,
		CheckoutRequestID: request.CheckoutRequestID,
		MembershipType:    plan,
	}, nil
}
