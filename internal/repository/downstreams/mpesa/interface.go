package mpesa

import (
	"context"
)

// Gateway covers the two calls needed to trigger an STK push against the
// Daraja API. There is no retry logic, a failed attempt surfaces to the
// caller so a registration can be retried end to end.
type Gateway interface {
	// AccessToken exchanges the configured client credentials for a
	// bearer token.
	AccessToken(ctx context.Context) (string, error)

	// InitiateSTKPush submits a push payment prompt to the payer's phone
	// and returns the provider response verbatim.
	InitiateSTKPush(ctx context.Context, request STKPushRequest) (STKPushResponse, error)
}

type STKPushRequest struct {
	PhoneNumber string
	Amount      int64
}

type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// CallbackEnvelope is the payload the provider pushes to the callback URL
// after the payer has confirmed or rejected the prompt.
type CallbackEnvelope struct {
	Body CallbackBody `json:"Body"`
}

type CallbackBody struct {
	STKCallback STKCallback `json:"stkCallback"`
}

type STKCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

type CallbackMetadata struct {
	Item []CallbackMetadataItem `json:"Item"`
}

type CallbackMetadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value,omitempty"`
}
