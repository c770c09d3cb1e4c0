package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtyfin/realty_ledger_app/internal/apperrors"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portsrepo "github.com/realtyfin/realty_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
	"github.com/realtyfin/realty_ledger_app/internal/middleware"
	"github.com/realtyfin/realty_ledger_app/internal/utils/money"
)

var hundred = decimal.NewFromInt(100)

// commissionService provides the commission ledger operations.
type commissionService struct {
	commissionRepo portsrepo.CommissionRepositoryFacade
	catalogSvc     portssvc.CatalogSvcFacade
}

// NewCommissionService creates a new commission ledger service. The catalog
// service supplies contract values for percentage derivation.
func NewCommissionService(commissionRepo portsrepo.CommissionRepositoryFacade, catalogSvc portssvc.CatalogSvcFacade) portssvc.CommissionSvcFacade {
	return &commissionService{
		commissionRepo: commissionRepo,
		catalogSvc:     catalogSvc,
	}
}

var _ portssvc.CommissionSvcFacade = (*commissionService)(nil)

func validatePercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("%w: percentage must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}

// CreateCommission creates a pending commission. When no explicit value is
// supplied the value derives from contract.value * percentage / 100, rounded
// half-up to the currency minor unit.
func (s *commissionService) CreateCommission(ctx context.Context, req dto.CreateCommissionRequest) (*domain.Commission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePercentage(req.Percentage); err != nil {
		return nil, err
	}

	var value decimal.Decimal
	if req.Value != nil {
		if req.Value.IsNegative() {
			return nil, fmt.Errorf("%w: value must not be negative", apperrors.ErrValidation)
		}
		value = money.RoundCurrency(*req.Value)
	} else {
		contract, err := s.catalogSvc.GetContract(ctx, req.ContractID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: contract %d does not exist", apperrors.ErrValidation, req.ContractID)
			}
			logger.Error("Failed to fetch contract for commission derivation", slog.Int64("contract_id", req.ContractID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to fetch contract %d: %w", req.ContractID, err)
		}
		value = money.PercentageOf(contract.Value, req.Percentage)
	}

	now := time.Now().UTC()
	commission := domain.Commission{
		ContractID:       req.ContractID,
		AgentID:          req.AgentID,
		CommissionTypeID: req.CommissionTypeID,
		Percentage:       req.Percentage,
		Value:            value,
		Status:           domain.CommissionPending,
		Notes:            req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.commissionRepo.SaveCommission(ctx, commission)
	if err != nil {
		logger.Error("Failed to save commission", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save commission: %w", err)
	}

	logger.Info("Commission created", slog.Int64("commission_id", saved.CommissionID), slog.Int64("contract_id", saved.ContractID), slog.String("value", saved.Value.String()))
	return saved, nil
}

// GetCommissionByID retrieves a single commission.
func (s *commissionService) GetCommissionByID(ctx context.Context, commissionID int64) (*domain.Commission, error) {
	commission, err := s.commissionRepo.FindCommissionByID(ctx, commissionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find commission", slog.Int64("commission_id", commissionID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return commission, nil
}

// ListCommissions retrieves one deterministically ordered page of
// commissions matching the filter.
func (s *commissionService) ListCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = defaultPageSize
	}
	if filter.PerPage > maxPageSize {
		filter.PerPage = maxPageSize
	}

	commissions, total, err := s.commissionRepo.ListCommissions(ctx, filter)
	if err != nil {
		logger.Error("Failed to list commissions", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to retrieve commissions: %w", err)
	}

	logger.Debug("Commissions listed", slog.Int("count", len(commissions)), slog.Int64("total", total))
	return commissions, total, nil
}

// UpdateCommission applies field updates to a pending commission.
func (s *commissionService) UpdateCommission(ctx context.Context, commissionID int64, req dto.UpdateCommissionRequest) (*domain.Commission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	commission, err := s.commissionRepo.FindCommissionByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}
	if !commission.IsMutable() {
		return nil, fmt.Errorf("%w: commission %d is %s and cannot be updated", apperrors.ErrInvalidStateTransition, commissionID, commission.Status)
	}

	recompute := false
	if req.Percentage != nil {
		if err := validatePercentage(*req.Percentage); err != nil {
			return nil, err
		}
		commission.Percentage = *req.Percentage
		recompute = true
	}
	if req.Value != nil {
		if req.Value.IsNegative() {
			return nil, fmt.Errorf("%w: value must not be negative", apperrors.ErrValidation)
		}
		commission.Value = money.RoundCurrency(*req.Value)
		recompute = false
	}
	if recompute {
		contract, err := s.catalogSvc.GetContract(ctx, commission.ContractID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch contract %d: %w", commission.ContractID, err)
		}
		commission.Value = money.PercentageOf(contract.Value, commission.Percentage)
	}
	if req.AgentID != nil {
		commission.AgentID = *req.AgentID
	}
	if req.CommissionTypeID != nil {
		commission.CommissionTypeID = req.CommissionTypeID
	}
	if req.Notes != nil {
		commission.Notes = *req.Notes
	}
	commission.LastUpdatedAt = time.Now().UTC()

	updated, err := s.commissionRepo.UpdateCommission(ctx, *commission)
	if err != nil {
		logger.Error("Failed to update commission", slog.Int64("commission_id", commissionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Commission updated", slog.Int64("commission_id", commissionID))
	return updated, nil
}

// ApproveCommission moves a pending commission to approved and stamps
// approved_at.
func (s *commissionService) ApproveCommission(ctx context.Context, commissionID int64) (*domain.Commission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	commission, err := s.commissionRepo.ApproveCommission(ctx, commissionID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidStateTransition) {
			logger.Warn("Rejected approve on non-pending commission", slog.Int64("commission_id", commissionID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to approve commission", slog.Int64("commission_id", commissionID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Commission approved", slog.Int64("commission_id", commissionID))
	return commission, nil
}

// PayCommission settles an approved commission. An approval always precedes
// payment; paying from any other status fails.
func (s *commissionService) PayCommission(ctx context.Context, commissionID int64, req dto.PayCommissionRequest) (*domain.Commission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	paidAt, err := dto.ParseDate(req.PaidAt)
	if err != nil {
		return nil, fmt.Errorf("%w: paidAt must be a valid %s date", apperrors.ErrValidation, dto.DateFormat)
	}

	commission, err := s.commissionRepo.PayCommission(ctx, commissionID, paidAt, req.PaymentTypeID, req.BankAccountID, req.Notes, req.ReceiptRef)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidStateTransition) {
			logger.Warn("Rejected pay on non-approved commission", slog.Int64("commission_id", commissionID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to pay commission", slog.Int64("commission_id", commissionID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Commission paid", slog.Int64("commission_id", commissionID), slog.String("paid_at", paidAt.Format(dto.DateFormat)))
	return commission, nil
}

// CancelCommission cancels a pending or approved commission. A paid
// commission can never be cancelled.
func (s *commissionService) CancelCommission(ctx context.Context, commissionID int64, req dto.CancelCommissionRequest) (*domain.Commission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	commission, err := s.commissionRepo.CancelCommission(ctx, commissionID, req.Notes, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidStateTransition) {
			logger.Warn("Rejected cancel on terminal commission", slog.Int64("commission_id", commissionID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to cancel commission", slog.Int64("commission_id", commissionID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Commission cancelled", slog.Int64("commission_id", commissionID))
	return commission, nil
}
