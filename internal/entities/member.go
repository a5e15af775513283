package entities

import (
	"database/sql"

	"gorm.io/gorm"
)

type MembershipType string

const (
	MembershipTypeMonthly  MembershipType = "monthly"
	MembershipTypeLifetime MembershipType = "lifetime"
)

func (m MembershipType) IsValid() bool {
	switch m {
	case MembershipTypeMonthly, MembershipTypeLifetime:
		return true
	}

	return false
}

// Member is created by the callback reconciliation on the first successful
// payment for an identity tuple and mutated on renewal or lifetime upgrade.
// It is never deleted.
type Member struct {
	gorm.Model
	FullName       string         `gorm:"uniqueIndex:idx_uq_member_identity;type:varchar(120) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	School         string         `gorm:"type:varchar(120) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
	AwardType      string         `gorm:"uniqueIndex:idx_uq_member_identity;type:varchar(80) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	AwardYear      int            `gorm:"uniqueIndex:idx_uq_member_identity;type:int;NOT NULL"`
	MembershipType MembershipType `gorm:"type:enum('monthly', 'lifetime')"`
	Paid           bool           `gorm:"NOT NULL"`
	// ExpiresAt stays NULL for lifetime members.
	ExpiresAt sql.NullTime `gorm:"type:date;NULL;default:NULL"`
}
