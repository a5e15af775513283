package v1registrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kenawards/reg-membership-service/internal/interaction"
	"github.com/kenawards/reg-membership-service/internal/logging"
	"github.com/kenawards/reg-membership-service/internal/restapi/common"
)

type registrationHandler struct {
	interactor interaction.Interactor
}

func Create(router chi.Router, i interaction.Interactor) {
	handler := registrationHandler{interactor: i}

	router.Post("/register", common.CreateHandler(
		handler.registerEndpoint,
		registerRequestHandler,
		registerResponseHandler,
	))
}

func (h *registrationHandler) registerEndpoint(ctx context.Context, request *RegisterRequestDto, logger logging.Logger) (*RegisterResponseDto, error) {
	result, err := h.interactor.RegisterForMembership(ctx, &interaction.RegistrationRequest{
		FullName:    request.FullName,
		School:      request.School,
		AwardType:   request.AwardType,
		AwardYear:   request.AwardYear,
		PhoneNumber: request.PhoneNumber,
		Amount:      request.Amount,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponseDto{
		Message:           "payment initiated, complete the prompt on your phone",
		CheckoutRequestID: result.CheckoutRequestID,
		PaymentID:         result.PaymentID,
	}, nil
}

func registerRequestHandler(r *http.Request) (*RegisterRequestDto, error) {
	var dto RegisterRequestDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("could not decode request body: %w", err)
	}

	if err := validateRegisterRequest(&dto); err != nil {
		return nil, err
	}

	return &dto, nil
}

func validateRegisterRequest(dto *RegisterRequestDto) error {
	var missing []string
	if dto.FullName == "" {
		missing = append(missing, "full_name")
	}
	if dto.AwardType == "" {
		missing = append(missing, "award_type")
	}
	if dto.AwardYear == 0 {
		missing = append(missing, "award_year")
	}
	if dto.PhoneNumber == "" {
		missing = append(missing, "phone_number")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if dto.Amount <= 0 {
		return errors.New("amount must be a positive value")
	}

	return nil
}

func registerResponseHandler(ctx context.Context, res *RegisterResponseDto, w http.ResponseWriter) error {
	return common.EncodeWithStatus(http.StatusOK, res, w)
}
