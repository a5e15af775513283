package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kenawards/reg-membership-service/internal/repository/database"
)

// RunInTransaction hands fn a connector bound to a single gorm transaction.
// The registration upsert and the callback reconciliation both run through
// here, so either all of their writes commit or none do.
func (m *mysqlConnector) RunInTransaction(ctx context.Context, fn func(repo database.Repository) error) error {
	tCtx, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	return m.db.WithContext(tCtx).Transaction(func(tx *gorm.DB) error {
		return fn(&mysqlConnector{
			logger: m.logger,
			db:     tx,
		})
	})
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.ErrNotFound
	}

	return err
}
