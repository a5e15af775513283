package v1members

// CheckRequestDto asks for the active memberships held under a name.
type CheckRequestDto struct {
	Name string `json:"name"`
}

type CheckResponseDto struct {
	Members []MemberDto `json:"members"`
}

type MemberDto struct {
	FullName       string `json:"full_name"`
	School         string `json:"school"`
	AwardType      string `json:"award_type"`
	AwardYear      int    `json:"award_year"`
	MembershipType string `json:"membership_type"`
	Paid           bool   `json:"paid"`
	// ExpiresAt is an ISO date. Empty for lifetime memberships.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// CreateMemberRequestDto inserts a member directly without a payment flow.
type CreateMemberRequestDto struct {
	FullName       string `json:"full_name"`
	School         string `json:"school"`
	AwardType      string `json:"award_type"`
	AwardYear      int    `json:"award_year"`
	MembershipType string `json:"membership_type"`
	ExpiresAt      string `json:"expires_at,omitempty"`
}

type CreateMemberResponseDto struct {
	Member MemberDto `json:"member"`
}
