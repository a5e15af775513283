package mysql

import (
	"context"
	"time"

	"github.com/kenawards/reg-membership-service/internal/entities"
)

func (m *mysqlConnector) CreateMember(ctx context.Context, member *entities.Member) error {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	result := m.db.WithContext(tCtx).Create(member)

	return result.Error
}

func (m *mysqlConnector) UpdateMember(ctx context.Context, member *entities.Member) error {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	// Save instead of Updates because ExpiresAt must be written even when
	// it changes to NULL (lifetime upgrade clears the expiry).
	res := m.db.WithContext(tCtx).Save(member)

	return res.Error
}

func (m *mysqlConnector) GetMemberByIdentity(ctx context.Context, fullName, awardType string, awardYear int) (*entities.Member, error) {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	var member entities.Member
	res := m.db.WithContext(tCtx).Where(&entities.Member{
		FullName:  fullName,
		AwardType: awardType,
		AwardYear: awardYear,
	}).First(&member)

	if res.Error != nil {
		return nil, wrapNotFound(res.Error)
	}

	return &member, nil
}

func (m *mysqlConnector) FindActiveMembersByName(ctx context.Context, fullName string, date time.Time) ([]entities.Member, error) {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	var members []entities.Member
	res := m.db.WithContext(tCtx).
		Where("full_name = ? AND paid = ?", fullName, true).
		Where("membership_type = ? OR expires_at >= ?", entities.MembershipTypeLifetime, date).
		Find(&members)

	if res.Error != nil {
		return nil, res.Error
	}

	return members, nil
}
