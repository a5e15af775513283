package interaction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kenawards/reg-membership-service/internal/apierrors"
	"github.com/kenawards/reg-membership-service/internal/entities"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
	"github.com/kenawards/reg-membership-service/internal/repository/database/inmemory"
	"github.com/kenawards/reg-membership-service/internal/repository/downstreams/mpesa"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "should rewrite leading zero to country prefix",
			input:    "0712345678",
			expected: "254712345678",
		},
		{
			name:     "should keep number already in international format",
			input:    "254712345678",
			expected: "254712345678",
		},
		{
			name:     "should keep number with plus sign unchanged",
			input:    "+254712345678",
			expected: "+254712345678",
		},
		{
			name:     "should keep empty input unchanged",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, NormalizePhoneNumber(tt.input))
		})
	}
}

func testRegistrationRequest() *RegistrationRequest {
	return &RegistrationRequest{
		FullName:    "Jane Wanjiku",
		School:      "Moi Girls",
		AwardType:   "gold",
		AwardYear:   2026,
		PhoneNumber: "0712345678",
		Amount:      100,
	}
}

func TestRegisterForMembershipInvalidAmount(t *testing.T) {
	repo := inmemory.NewInMemoryProvider()
	gw := &GatewayMock{}
	i := newTestInteractor(t, repo, gw)

	reg := testRegistrationRequest()
	reg.Amount = 42

	result, err := i.RegisterForMembership(context.Background(), reg)
	require.Nil(t, result)
	require.True(t, apierrors.IsBadRequestError(err))

	// nothing was persisted and the gateway was never called
	_, err = repo.GetPendingPaymentRequestByIdentity(context.Background(), reg.FullName, reg.AwardType, reg.AwardYear)
	require.ErrorIs(t, err, database.ErrNotFound)
	require.Empty(t, gw.pushRequests)
}

func TestRegisterForMembershipSuccess(t *testing.T) {
	repo := inmemory.NewInMemoryProvider()
	gw := &GatewayMock{}
	i := newTestInteractor(t, repo, gw)

	result, err := i.RegisterForMembership(context.Background(), testRegistrationRequest())
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, "ws_CO_191220191020363925", result.CheckoutRequestID)
	require.Equal(t, entities.MembershipTypeMonthly, result.MembershipType)
	require.NotZero(t, result.PaymentID)

	require.Len(t, gw.pushRequests, 1)
	require.Equal(t, "254712345678", gw.pushRequests[0].PhoneNumber)
	require.Equal(t, int64(100), gw.pushRequests[0].Amount)

	request, err := repo.GetPendingPaymentRequestByIdentity(context.Background(), "Jane Wanjiku", "gold", 2026)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusPending, request.Status)
	require.Equal(t, "ws_CO_191220191020363925", request.CheckoutRequestID)
	require.Equal(t, entities.MembershipTypeMonthly, request.MembershipType)
	require.Equal(t, "254712345678", request.PhoneNumber)
}

func TestRegisterForMembershipReusesPendingRequest(t *testing.T) {
	repo := inmemory.NewInMemoryProvider()
	gw := &GatewayMock{}
	i := newTestInteractor(t, repo, gw)

	first, err := i.RegisterForMembership(context.Background(), testRegistrationRequest())
	require.NoError(t, err)

	// the same applicant retries with a different plan and phone number
	retry := testRegistrationRequest()
	retry.Amount = 1000
	retry.PhoneNumber = "0722000111"

	second, err := i.RegisterForMembership(context.Background(), retry)
	require.NoError(t, err)
	require.Equal(t, first.PaymentID, second.PaymentID)
	require.Equal(t, entities.MembershipTypeLifetime, second.MembershipType)

	request, err := repo.GetPendingPaymentRequestByIdentity(context.Background(), retry.FullName, retry.AwardType, retry.AwardYear)
	require.NoError(t, err)
	require.Equal(t, int64(1000), request.Amount)
	require.Equal(t, entities.MembershipTypeLifetime, request.MembershipType)
	require.Equal(t, "254722000111", request.PhoneNumber)

	require.Len(t, gw.pushRequests, 2)
}

func TestRegisterForMembershipGatewayFailure(t *testing.T) {
	repo := inmemory.NewInMemoryProvider()
	gw := &GatewayMock{
		initiateFunc: func(ctx context.Context, request mpesa.STKPushRequest) (mpesa.STKPushResponse, error) {
			return mpesa.STKPushResponse{}, errors.New("connection refused")
		},
	}
	i := newTestInteractor(t, repo, gw)

	result, err := i.RegisterForMembership(context.Background(), testRegistrationRequest())
	require.Nil(t, result)
	require.True(t, apierrors.IsInternalServerError(err))

	// the pending row survives the failed gateway call so a retry can pick it up
	request, err := repo.GetPendingPaymentRequestByIdentity(context.Background(), "Jane Wanjiku", "gold", 2026)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusPending, request.Status)
	require.Empty(t, request.CheckoutRequestID)
}

func TestRegisterForMembershipMissingCheckoutRequestID(t *testing.T) {
	repo := inmemory.NewInMemoryProvider()
	gw := &GatewayMock{
		initiateFunc: func(ctx context.Context, request mpesa.STKPushRequest) (mpesa.STKPushResponse, error) {
			return mpesa.STKPushResponse{
				ResponseCode:        "1",
				ResponseDescription: "Unable to process request",
			}, nil
		},
	}
	i := newTestInteractor(t, repo, gw)

	result, err := i.RegisterForMembership(context.Background(), testRegistrationRequest())
	require.Nil(t, result)
	require.True(t, apierrors.IsInternalServerError(err))
}
