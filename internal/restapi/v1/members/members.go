package v1members

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kenawards/reg-membership-service/internal/apierrors"
	"github.com/kenawards/reg-membership-service/internal/config"
	"github.com/kenawards/reg-membership-service/internal/interaction"
	"github.com/kenawards/reg-membership-service/internal/logging"
	"github.com/kenawards/reg-membership-service/internal/restapi/common"
	"github.com/kenawards/reg-membership-service/internal/restapi/middleware"
)

type memberHandler struct {
	interactor interaction.Interactor
}

func Create(router chi.Router, i interaction.Interactor, conf *config.SecurityConfig) {
	handler := memberHandler{interactor: i}

	router.Post("/members/check", common.CreateHandler(
		handler.checkEndpoint,
		checkRequestHandler,
		checkResponseHandler,
	))

	router.Group(func(r chi.Router) {
		r.Use(middleware.CheckRequestAuthorization(conf))
		r.Post("/members", common.CreateHandler(
			handler.createEndpoint,
			createMemberRequestHandler,
			createMemberResponseHandler,
		))
	})
}

func (h *memberHandler) checkEndpoint(ctx context.Context, request *CheckRequestDto, logger logging.Logger) (*CheckResponseDto, error) {
	members, err := h.interactor.CheckMembership(ctx, request.Name)
	if err != nil {
		return nil, err
	}

	result := CheckResponseDto{Members: make([]MemberDto, 0, len(members))}
	for i := range members {
		result.Members = append(result.Members, memberDtoFromEntity(&members[i]))
	}

	return &result, nil
}

func checkRequestHandler(r *http.Request) (*CheckRequestDto, error) {
	var dto CheckRequestDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("could not decode request body: %w", err)
	}

	if dto.Name == "" {
		return nil, errors.New("name must not be empty")
	}

	return &dto, nil
}

func checkResponseHandler(ctx context.Context, res *CheckResponseDto, w http.ResponseWriter) error {
	return common.EncodeWithStatus(http.StatusOK, res, w)
}

func (h *memberHandler) createEndpoint(ctx context.Context, request *CreateMemberRequestDto, logger logging.Logger) (*CreateMemberResponseDto, error) {
	member, err := memberEntityFromDto(request)
	if err != nil {
		return nil, apierrors.NewBadRequest(err.Error())
	}

	created, err := h.interactor.CreateMember(ctx, member)
	if err != nil {
		return nil, err
	}

	return &CreateMemberResponseDto{Member: memberDtoFromEntity(created)}, nil
}

func createMemberRequestHandler(r *http.Request) (*CreateMemberRequestDto, error) {
	var dto CreateMemberRequestDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("could not decode request body: %w", err)
	}

	if dto.FullName == "" || dto.AwardType == "" || dto.AwardYear == 0 {
		return nil, errors.New("full_name, award_type and award_year are required")
	}

	return &dto, nil
}

func createMemberResponseHandler(ctx context.Context, res *CreateMemberResponseDto, w http.ResponseWriter) error {
	return common.EncodeWithStatus(http.StatusCreated, res, w)
}
