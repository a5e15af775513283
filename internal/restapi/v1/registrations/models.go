package v1registrations

// RegisterRequestDto is the application form sent by the public frontend.
type RegisterRequestDto struct {
	FullName    string `json:"full_name"`
	School      string `json:"school"`
	AwardType   string `json:"award_type"`
	AwardYear   int    `json:"award_year"`
	PhoneNumber string `json:"phone_number"`
	Amount      int64  `json:"amount"`
}

// RegisterResponseDto acknowledges that the payment prompt was sent to
// the applicant's phone. Settlement happens later through the callback.
type RegisterResponseDto struct {
	Message           string `json:"message"`
	CheckoutRequestID string `json:"checkoutRequestID"`
	PaymentID         uint   `json:"paymentId"`
}
