package interaction

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kenawards/reg-membership-service/internal/apierrors"
	"github.com/kenawards/reg-membership-service/internal/entities"
	"github.com/kenawards/reg-membership-service/internal/repository/database/inmemory"
	"github.com/kenawards/reg-membership-service/internal/restapi/common"
)

func apiTokenContext() context.Context {
	return context.WithValue(context.Background(), common.CtxKeyAPIKey{}, "api-token")
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), common.CtxKeyToken{}, "token")
	return context.WithValue(ctx, common.CtxKeyClaims{}, &common.AllClaims{
		CustomClaims: common.CustomClaims{
			Global: common.GlobalClaims{Roles: []string{"admin"}},
		},
	})
}

func TestCheckMembership(t *testing.T) {
	repo := inmemory.NewInMemoryProvider()
	i := newTestInteractor(t, repo, &GatewayMock{})

	require.NoError(t, repo.CreateMember(context.Background(), &entities.Member{
		FullName:       "Jane Wanjiku",
		AwardType:      "gold",
		AwardYear:      2025,
		MembershipType: entities.MembershipTypeMonthly,
		Paid:           true,
		ExpiresAt:      sql.NullTime{Time: time.Now().UTC().AddDate(0, 0, -5), Valid: true},
	}))
	require.NoError(t, repo.CreateMember(context.Background(), &entities.Member{
		FullName:       "Jane Wanjiku",
		AwardType:      "gold",
		AwardYear:      2026,
		MembershipType: entities.MembershipTypeLifetime,
		Paid:           true,
	}))

	t.Run("should reject an empty name", func(t *testing.T) {
		_, err := i.CheckMembership(context.Background(), "")
		require.True(t, apierrors.IsBadRequestError(err))
	})

	t.Run("should return not found for an unknown name", func(t *testing.T) {
		_, err := i.CheckMembership(context.Background(), "John Otieno")
		require.True(t, apierrors.IsNotFoundError(err))
	})

	t.Run("should only return unexpired memberships", func(t *testing.T) {
		members, err := i.CheckMembership(context.Background(), "Jane Wanjiku")
		require.NoError(t, err)
		require.Len(t, members, 1)
		require.Equal(t, entities.MembershipTypeLifetime, members[0].MembershipType)
		require.Equal(t, 2026, members[0].AwardYear)
	})
}

func TestCreateMember(t *testing.T) {
	newMember := func() *entities.Member {
		return &entities.Member{
			FullName:       "John Otieno",
			School:         "Alliance",
			AwardType:      "silver",
			AwardYear:      2026,
			MembershipType: entities.MembershipTypeLifetime,
		}
	}

	t.Run("should refuse an unauthenticated caller", func(t *testing.T) {
		i := newTestInteractor(t, inmemory.NewInMemoryProvider(), &GatewayMock{})

		_, err := i.CreateMember(context.Background(), newMember())
		require.True(t, apierrors.IsForbiddenError(err))
	})

	t.Run("should accept an api token caller", func(t *testing.T) {
		repo := inmemory.NewInMemoryProvider()
		i := newTestInteractor(t, repo, &GatewayMock{})

		created, err := i.CreateMember(apiTokenContext(), newMember())
		require.NoError(t, err)
		require.NotNil(t, created)

		stored, err := repo.GetMemberByIdentity(context.Background(), "John Otieno", "silver", 2026)
		require.NoError(t, err)
		require.Equal(t, entities.MembershipTypeLifetime, stored.MembershipType)
	})

	t.Run("should accept an admin caller", func(t *testing.T) {
		i := newTestInteractor(t, inmemory.NewInMemoryProvider(), &GatewayMock{})

		_, err := i.CreateMember(adminContext(), newMember())
		require.NoError(t, err)
	})

	t.Run("should reject an invalid membership type", func(t *testing.T) {
		i := newTestInteractor(t, inmemory.NewInMemoryProvider(), &GatewayMock{})

		member := newMember()
		member.MembershipType = "weekly"

		_, err := i.CreateMember(apiTokenContext(), member)
		require.True(t, apierrors.IsBadRequestError(err))
	})

	t.Run("should reject a duplicate identity", func(t *testing.T) {
		i := newTestInteractor(t, inmemory.NewInMemoryProvider(), &GatewayMock{})

		_, err := i.CreateMember(apiTokenContext(), newMember())
		require.NoError(t, err)

		_, err = i.CreateMember(apiTokenContext(), newMember())
		require.True(t, apierrors.IsConflictError(err))
	})
}
