package v1payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kenawards/reg-membership-service/internal/config"
	"github.com/kenawards/reg-membership-service/internal/interaction"
	"github.com/kenawards/reg-membership-service/internal/logging"
	"github.com/kenawards/reg-membership-service/internal/repository/downstreams/mpesa"
	"github.com/kenawards/reg-membership-service/internal/restapi/common"
	"github.com/kenawards/reg-membership-service/internal/restapi/middleware"
)

type paymentsHandler struct {
	interactor interaction.Interactor
}

func Create(router chi.Router, i interaction.Interactor, conf *config.SecurityConfig) {
	handler := paymentsHandler{interactor: i}

	// the callback endpoint is authenticated by knowledge of the checkout
	// request id, the provider cannot send custom auth headers
	router.Post("/mpesa/callback", common.CreateHandler(
		handler.callbackEndpoint,
		callbackRequestHandler,
		callbackResponseHandler,
	))

	router.Group(func(r chi.Router) {
		r.Use(middleware.CheckRequestAuthorization(conf))
		r.Get("/mpesa/token", common.CreateHandler(
			handler.tokenEndpoint,
			tokenRequestHandler,
			tokenResponseHandler,
		))
	})
}

func (h *paymentsHandler) callbackEndpoint(ctx context.Context, request *mpesa.CallbackEnvelope, logger logging.Logger) (*CallbackResponseDto, error) {
	stk := request.Body.STKCallback

	err := h.interactor.ProcessPaymentCallback(ctx, &interaction.PaymentCallback{
		CheckoutRequestID: stk.CheckoutRequestID,
		ResultCode:        stk.ResultCode,
		ResultDesc:        stk.ResultDesc,
	})
	if err != nil {
		return nil, err
	}

	return &CallbackResponseDto{
		ResultCode: 0,
		ResultDesc: "The service request is processed successfully.",
	}, nil
}

func callbackRequestHandler(r *http.Request) (*mpesa.CallbackEnvelope, error) {
	var envelope mpesa.CallbackEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("could not decode callback body: %w", err)
	}

	if envelope.Body.STKCallback.CheckoutRequestID == "" {
		return nil, errors.New("callback did not contain a CheckoutRequestID")
	}

	return &envelope, nil
}

func callbackResponseHandler(ctx context.Context, res *CallbackResponseDto, w http.ResponseWriter) error {
	return common.EncodeWithStatus(http.StatusOK, res, w)
}

func (h *paymentsHandler) tokenEndpoint(ctx context.Context, request *TokenRequestDto, logger logging.Logger) (*TokenResponseDto, error) {
	token, err := h.interactor.GatewayToken(ctx)
	if err != nil {
		return nil, err
	}

	return &TokenResponseDto{Token: token}, nil
}

func tokenRequestHandler(r *http.Request) (*TokenRequestDto, error) {
	return &TokenRequestDto{}, nil
}

func tokenResponseHandler(ctx context.Context, res *TokenResponseDto, w http.ResponseWriter) error {
	return common.EncodeWithStatus(http.StatusOK, res, w)
}
