package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

// stubTx fakes only the Rollback result; no other pgx.Tx method is touched.
type stubTx struct {
	pgx.Tx
	rollbackErr error
}

func (s stubTx) Rollback(ctx context.Context) error {
	return s.rollbackErr
}

func TestBaseRepository_Rollback(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "clean rollback", err: nil},
		// A deferred rollback after a successful commit is a no-op, not a
		// failure, whichever sentinel the driver reports it with.
		{name: "already committed via pgx", err: pgx.ErrTxClosed},
		{name: "already committed via stdlib adapter", err: sql.ErrTxDone},
		{name: "real failure", err: errors.New("connection reset"), wantErr: true},
	}

	repo := &BaseRepository{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Rollback(context.Background(), stubTx{rollbackErr: tt.err})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
