package services

import (
	"context"

	"github.com/finchbooks/finch/internal/dto"
)

// TransactionSvcFacade exposes transaction creation, retrieval and mutation.
// Updates and deletes carry the version token the client last read; a stale
// token fails with ErrStaleVersion and the client must reload.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*dto.TransactionResponse, error)
	GetTransactionByID(ctx context.Context, transactionID string) (*dto.TransactionResponse, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*dto.TransactionResponse, error)
	DeleteTransaction(ctx context.Context, transactionID string, req dto.DeleteTransactionRequest, userID string) error
	ListAccountLedger(ctx context.Context, accountID string, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error)
}
