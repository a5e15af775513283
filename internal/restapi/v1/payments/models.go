package v1payments

// CallbackResponseDto is the acknowledgement shape the payment provider
// expects back for a delivered callback.
type CallbackResponseDto struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

type TokenRequestDto struct{}

type TokenResponseDto struct {
	Token string `json:"token"`
}
