package interaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/kenawards/reg-membership-service/internal/config"
	"github.com/kenawards/reg-membership-service/internal/entities"
	"github.com/kenawards/reg-membership-service/internal/logging"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
	"github.com/kenawards/reg-membership-service/internal/repository/downstreams/mpesa"
)

var _ Interactor = (*serviceInteractor)(nil)

type Interactor interface {
	// RegisterForMembership stores a pending payment request for the
	// applicant and triggers the push payment at the gateway.
	RegisterForMembership(ctx context.Context, reg *RegistrationRequest) (*RegistrationResult, error)

	// ProcessPaymentCallback reconciles an asynchronous payment result
	// against the stored payment request and membership state.
	ProcessPaymentCallback(ctx context.Context, cb *PaymentCallback) error

	// CheckMembership returns the currently valid paid memberships held
	// under the given name.
	CheckMembership(ctx context.Context, fullName string) ([]entities.Member, error)

	// CreateMember inserts a member directly, bypassing payment. Admin only.
	CreateMember(ctx context.Context, member *entities.Member) (*entities.Member, error)

	// GatewayToken fetches a raw gateway access token for debugging.
	GatewayToken(ctx context.Context) (string, error)
}

type serviceInteractor struct {
	logger        logging.Logger
	store         database.Repository
	gatewayClient mpesa.Gateway
	// plans maps a payable amount to the membership type it purchases
	plans map[int64]entities.MembershipType
}

func NewServiceInteractor(r database.Repository,
	gwClient mpesa.Gateway,
	plans []config.MembershipPlan,
	logger logging.Logger,
) (Interactor, error) {

	if r == nil {
		return nil, errors.New("repository must not be nil")
	}

	if gwClient == nil {
		return nil, errors.New("no payment gateway client provided")
	}

	if len(plans) == 0 {
		return nil, errors.New("no membership plans configured")
	}

	planMap := make(map[int64]entities.MembershipType, len(plans))
	for _, plan := range plans {
		membershipType := entities.MembershipType(plan.MembershipType)
		if !membershipType.IsValid() {
			return nil, fmt.Errorf("invalid membership type %s in plan configuration", plan.MembershipType)
		}

		planMap[plan.Amount] = membershipType
	}

	return &serviceInteractor{
		logger:        logger,
		store:         r,
		gatewayClient: gwClient,
		plans:         planMap,
	}, nil
}
