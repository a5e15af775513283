// Package inmemory provides the map backed repository used by the unit
// tests and for local development without a database server.
package inmemory

import (
	"context"
	"sync"

	"github.com/kenawards/reg-membership-service/internal/entities"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
)

var _ database.Repository = (*inmemoryProvider)(nil)

type inmemoryState struct {
	members         map[uint]entities.Member
	paymentRequests map[uint]entities.PaymentRequest
	memberSeq       uint
	requestSeq      uint
}

type inmemoryProvider struct {
	mu    sync.Mutex
	state *inmemoryState
	// inTx is set on the handle passed to a RunInTransaction callback,
	// which already holds the lock.
	inTx bool
}

func NewInMemoryProvider() database.Repository {
	return &inmemoryProvider{
		state: &inmemoryState{
			members:         make(map[uint]entities.Member),
			paymentRequests: make(map[uint]entities.PaymentRequest),
		},
	}
}

func (m *inmemoryProvider) Migrate() error {
	// Nothing to do here
	return nil
}

func (m *inmemoryProvider) lock() {
	if !m.inTx {
		m.mu.Lock()
	}
}

func (m *inmemoryProvider) unlock() {
	if !m.inTx {
		m.mu.Unlock()
	}
}

// RunInTransaction snapshots the state and restores it when fn fails, which
// gives the same all-or-nothing semantics the mysql implementation has.
func (m *inmemoryProvider) RunInTransaction(ctx context.Context, fn func(repo database.Repository) error) error {
	if m.inTx {
		return fn(m)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()

	tx := &inmemoryProvider{
		state: m.state,
		inTx:  true,
	}

	if err := fn(tx); err != nil {
		*m.state = *snapshot
		return err
	}

	return nil
}

func (s *inmemoryState) clone() *inmemoryState {
	cp := &inmemoryState{
		members:         make(map[uint]entities.Member, len(s.members)),
		paymentRequests: make(map[uint]entities.PaymentRequest, len(s.paymentRequests)),
		memberSeq:       s.memberSeq,
		requestSeq:      s.requestSeq,
	}

	for id, member := range s.members {
		cp.members[id] = member
	}
	for id, pr := range s.paymentRequests {
		cp.paymentRequests[id] = pr
	}

	return cp
}
