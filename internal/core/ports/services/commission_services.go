package services

import (
	"context"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
)

// CommissionSvcFacade defines the commission ledger operations exposed to
// handlers. The status machine is PENDING -> APPROVED -> PAID, with
// cancellation reachable from PENDING or APPROVED only.
type CommissionSvcFacade interface {
	CreateCommission(ctx context.Context, req dto.CreateCommissionRequest) (*domain.Commission, error)
	GetCommissionByID(ctx context.Context, commissionID int64) (*domain.Commission, error)
	ListCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, int64, error)
	UpdateCommission(ctx context.Context, commissionID int64, req dto.UpdateCommissionRequest) (*domain.Commission, error)
	ApproveCommission(ctx context.Context, commissionID int64) (*domain.Commission, error)
	PayCommission(ctx context.Context, commissionID int64, req dto.PayCommissionRequest) (*domain.Commission, error)
	CancelCommission(ctx context.Context, commissionID int64, req dto.CancelCommissionRequest) (*domain.Commission, error)
}

// CatalogSvcFacade is the narrow read-only interface onto the external
// catalog/identity services; the ledger only ever needs a contract's value.
type CatalogSvcFacade interface {
	GetContract(ctx context.Context, contractID int64) (*domain.ContractRef, error)
}
