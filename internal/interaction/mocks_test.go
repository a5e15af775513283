package interaction

import (
	"context"

	"github.com/kenawards/reg-membership-service/internal/repository/downstreams/mpesa"
)

var _ mpesa.Gateway = (*GatewayMock)(nil)

// GatewayMock records push requests and returns canned responses unless a
// function override is set.
type GatewayMock struct {
	accessTokenFunc func(ctx context.Context) (string, error)
	initiateFunc    func(ctx context.Context, request mpesa.STKPushRequest) (mpesa.STKPushResponse, error)

	pushRequests []mpesa.STKPushRequest
}

func (m *GatewayMock) AccessToken(ctx context.Context) (string, error) {
	if m.accessTokenFunc != nil {
		return m.accessTokenFunc(ctx)
	}

	return "mock-access-token", nil
}

func (m *GatewayMock) InitiateSTKPush(ctx context.Context, request mpesa.STKPushRequest) (mpesa.STKPushResponse, error) {
	m.pushRequests = append(m.pushRequests, request)

	if m.initiateFunc != nil {
		return m.initiateFunc(ctx, request)
	}

	return mpesa.STKPushResponse{
		MerchantRequestID:   "29115-34620561-1",
		CheckoutRequestID:   "ws_CO_191220191020363925",
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     "Success. Request accepted for processing",
	}, nil
}
