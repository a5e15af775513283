package interaction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kenawards/reg-membership-service/internal/config"
	"github.com/kenawards/reg-membership-service/internal/logging"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
	"github.com/kenawards/reg-membership-service/internal/repository/database/inmemory"
	"github.com/kenawards/reg-membership-service/internal/repository/downstreams/mpesa"
)

func testPlans() []config.MembershipPlan {
	return []config.MembershipPlan{
		{Amount: 100, MembershipType: "monthly"},
		{Amount: 1000, MembershipType: "lifetime"},
	}
}

func newTestInteractor(t *testing.T, repo database.Repository, gw mpesa.Gateway) Interactor {
	t.Helper()

	i, err := NewServiceInteractor(repo, gw, testPlans(), logging.NewNoopLogger())
	require.NoError(t, err)

	return i
}

func TestNewServiceInteractor(t *testing.T) {
	type args struct {
		repo     database.Repository
		gwClient mpesa.Gateway
		plans    []config.MembershipPlan
	}

	type expected struct {
		err error
	}

	tests := []struct {
		name     string
		args     args
		expected expected
	}{
		{
			name: "should return error when repository is missing",
			args: args{
				plans: testPlans(),
			},
			expected: expected{
				err: errors.New("repository must not be nil"),
			},
		},
		{
			name: "should return error when gateway client is missing",
			args: args{
				repo:  inmemory.NewInMemoryProvider(),
				plans: testPlans(),
			},
			expected: expected{
				err: errors.New("no payment gateway client provided"),
			},
		},
		{
			name: "should return error when no plans are configured",
			args: args{
				repo:     inmemory.NewInMemoryProvider(),
				gwClient: &GatewayMock{},
			},
			expected: expected{
				err: errors.New("no membership plans configured"),
			},
		},
		{
			name: "should return error when a plan names an unknown membership type",
			args: args{
				repo:     inmemory.NewInMemoryProvider(),
				gwClient: &GatewayMock{},
				plans: []config.MembershipPlan{
					{Amount: 100, MembershipType: "weekly"},
				},
			},
			expected: expected{
				err: errors.New("invalid membership type weekly in plan configuration"),
			},
		},
		{
			name: "should succeed when all values are set",
			args: args{
				repo:     inmemory.NewInMemoryProvider(),
				gwClient: &GatewayMock{},
				plans:    testPlans(),
			},
			expected: expected{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, err := NewServiceInteractor(tt.args.repo, tt.args.gwClient, tt.args.plans, logging.NewNoopLogger())
			if tt.expected.err != nil {
				require.EqualError(t, err, tt.expected.err.Error())
				require.Nil(t, i)
			} else {
				require.NoError(t, err)
				require.NotNil(t, i)
			}
		})
	}
}
