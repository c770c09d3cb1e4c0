package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) ListAllTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) MarkTransactionPaid(ctx context.Context, transactionID int64, paymentDate time.Time, notes string, receiptRef string, now time.Time) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, paymentDate, notes, receiptRef, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CancelTransaction(ctx context.Context, transactionID int64, notes string, now time.Time) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, notes, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// MockCommissionRepository is a mock type for the CommissionRepositoryFacade interface
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) SaveCommission(ctx context.Context, commission domain.Commission) (*domain.Commission, error) {
	args := m.Called(ctx, commission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindCommissionByID(ctx context.Context, commissionID int64) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) ListCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Commission), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommissionRepository) ListAllCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) UpdateCommission(ctx context.Context, commission domain.Commission) (*domain.Commission, error) {
	args := m.Called(ctx, commission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) ApproveCommission(ctx context.Context, commissionID int64, approvedAt time.Time) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, approvedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) PayCommission(ctx context.Context, commissionID int64, paidAt time.Time, paymentTypeID int64, bankAccountID *int64, notes string, receiptRef string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, paidAt, paymentTypeID, bankAccountID, notes, receiptRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) CancelCommission(ctx context.Context, commissionID int64, notes string, now time.Time) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, notes, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, categoryType *domain.CategoryType, manageableOnly bool) ([]domain.Category, error) {
	args := m.Called(ctx, categoryType, manageableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// MockCatalogSvc is a mock type for the CatalogSvcFacade interface
type MockCatalogSvc struct {
	mock.Mock
}

func (m *MockCatalogSvc) GetContract(ctx context.Context, contractID int64) (*domain.ContractRef, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractRef), args.Error(1)
}

// MockRemoteRender is a mock type for the RemoteRenderSvc interface
type MockRemoteRender struct {
	mock.Mock
}

func (m *MockRemoteRender) RenderTransactionsExport(ctx context.Context, filter domain.TransactionFilter, format domain.DocumentFormat) ([]byte, error) {
	args := m.Called(ctx, filter, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRemoteRender) RenderCommissionsExport(ctx context.Context, filter domain.CommissionFilter, format domain.DocumentFormat) ([]byte, error) {
	args := m.Called(ctx, filter, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockLocalRenderer is a mock type for the ReportRenderer interface. It
// records the documents it was asked to render so tests can compare the
// payloads of the two report paths.
type MockLocalRenderer struct {
	mock.Mock
	RenderedDocs []domain.ReportDocument
}

func (m *MockLocalRenderer) Render(ctx context.Context, doc domain.ReportDocument, format domain.DocumentFormat) ([]byte, error) {
	m.RenderedDocs = append(m.RenderedDocs, doc)
	args := m.Called(ctx, doc, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ portssvc.RemoteRenderSvc = (*MockRemoteRender)(nil)
var _ portssvc.ReportRenderer = (*MockLocalRenderer)(nil)
var _ portssvc.CatalogSvcFacade = (*MockCatalogSvc)(nil)
