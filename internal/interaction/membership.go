package interaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kenawards/reg-membership-service/internal/apierrors"
	"github.com/kenawards/reg-membership-service/internal/entities"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
)

func (s *serviceInteractor) CheckMembership(ctx context.Context, fullName string) ([]entities.Member, error) {
	if fullName == "" {
		return nil, apierrors.NewBadRequest("name must not be empty")
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	members, err := s.store.FindActiveMembersByName(ctx, fullName, today)
	if err != nil {
		return nil, err
	}

	if len(members) == 0 {
		return nil, apierrors.NewNotFound(fmt.Sprintf("no valid membership found for %s", fullName))
	}

	return members, nil
}

func (s *serviceInteractor) CreateMember(ctx context.Context, member *entities.Member) (*entities.Member, error) {
	mgr := NewIdentityManager(ctx)
	if !mgr.IsAdmin() && !mgr.IsAPITokenCall() {
		return nil, apierrors.NewForbidden("no permission to create members")
	}

	if !member.MembershipType.IsValid() {
		return nil, apierrors.NewBadRequest(fmt.Sprintf("invalid membership type %s provided", member.MembershipType))
	}

	_, err := s.store.GetMemberByIdentity(ctx, member.FullName, member.AwardType, member.AwardYear)
	if err == nil {
		return nil, apierrors.NewConflict(
			fmt.Sprintf("member %s already exists for award %s %d", member.FullName, member.AwardType, member.AwardYear),
		)
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	if err := s.store.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *serviceInteractor) GatewayToken(ctx context.Context) (string, error) {
	return s.gatewayClient.AccessToken(ctx)
}
