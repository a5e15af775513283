package inmemory

import (
	"context"
	"errors"
	"time"

	"github.com/kenawards/reg-membership-service/internal/entities"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
)

func (m *inmemoryProvider) CreateMember(ctx context.Context, member *entities.Member) error {
	m.lock()
	defer m.unlock()

	if member.ID != 0 {
		return errors.New("create needs a new member")
	}

	for _, existing := range m.state.members {
		if existing.FullName == member.FullName &&
			existing.AwardType == member.AwardType &&
			existing.AwardYear == member.AwardYear {
			return errors.New("duplicate member identity")
		}
	}

	m.state.memberSeq++
	member.ID = m.state.memberSeq

	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}

	m.state.members[member.ID] = *member
	return nil
}

func (m *inmemoryProvider) UpdateMember(ctx context.Context, member *entities.Member) error {
	m.lock()
	defer m.unlock()

	_, ok := m.state.members[member.ID]
	if !ok {
		return database.ErrNotFound
	}

	m.state.members[member.ID] = *member
	return nil
}

func (m *inmemoryProvider) GetMemberByIdentity(ctx context.Context, fullName, awardType string, awardYear int) (*entities.Member, error) {
	m.lock()
	defer m.unlock()

	for _, member := range m.state.members {
		if member.FullName == fullName && member.AwardType == awardType && member.AwardYear == awardYear {
			copy := member
			return &copy, nil
		}
	}

	return nil, database.ErrNotFound
}

func (m *inmemoryProvider) FindActiveMembersByName(ctx context.Context, fullName string, date time.Time) ([]entities.Member, error) {
	m.lock()
	defer m.unlock()

	result := make([]entities.Member, 0)
	for _, member := range m.state.members {
		if member.FullName != fullName || !member.Paid {
			continue
		}

		if member.MembershipType == entities.MembershipTypeLifetime {
			result = append(result, member)
			continue
		}

		if member.ExpiresAt.Valid && !member.ExpiresAt.Time.Before(date) {
			result = append(result, member)
		}
	}

	return result, nil
}
