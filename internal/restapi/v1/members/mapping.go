package v1members

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kenawards/reg-membership-service/internal/entities"
)

const isoDateFormat = "2006-01-02"

func memberDtoFromEntity(member *entities.Member) MemberDto {
	dto := MemberDto{
		FullName:       member.FullName,
		School:         member.School,
		AwardType:      member.AwardType,
		AwardYear:      member.AwardYear,
		MembershipType: string(member.MembershipType),
		Paid:           member.Paid,
	}
	if member.ExpiresAt.Valid {
		dto.ExpiresAt = member.ExpiresAt.Time.Format(isoDateFormat)
	}

	return dto
}

func memberEntityFromDto(dto *CreateMemberRequestDto) (*entities.Member, error) {
	member := &entities.Member{
		FullName:       dto.FullName,
		School:         dto.School,
		AwardType:      dto.AwardType,
		AwardYear:      dto.AwardYear,
		MembershipType: entities.MembershipType(dto.MembershipType),
		Paid:           true,
	}

	if dto.ExpiresAt != "" {
		expiry, err := time.Parse(isoDateFormat, dto.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("expires_at must be a date in the format %s", isoDateFormat)
		}
		member.ExpiresAt = sql.NullTime{Time: expiry, Valid: true}
	}

	return member, nil
}
