// Package ledger contains the application services for transactions,
// accounts, categories and the aggregate balance.
package ledger

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business operations
type TransactionService struct {
	transactionRepo ledger.TransactionRepository
	accountRepo     ledger.AccountRepository
	categoryRepo    ledger.CategoryRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo ledger.TransactionRepository,
	accountRepo ledger.AccountRepository,
	categoryRepo ledger.CategoryRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

// List retrieves a page of transactions with the total match count
func (s *TransactionService) List(ctx context.Context, ownerID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	domainFilter := ledger.TransactionFilter{
		FromDate:    filter.FromDate,
		ToDate:      filter.ToDate,
		AccountIDs:  filter.AccountIDs,
		CategoryIDs: filter.CategoryIDs,
		SortBy:      filter.SortBy,
		SortOrder:   filter.SortOrder,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
	}

	if filter.Type != "" {
		txType := ledger.TransactionType(filter.Type)
		if !txType.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_TYPE", "Transaction type is not valid")
		}
		domainFilter.Type = &txType
	}

	transactions, err := s.transactionRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.transactionRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = *ToTransactionResponse(&transactions[i])
	}

	return responses, total, nil
}

// GetByID retrieves a transaction by ID
func (s *TransactionService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*TransactionResponse, error) {
	transaction, err := s.transactionRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponse(transaction), nil
}

// Create creates a new transaction
func (s *TransactionService) Create(ctx context.Context, ownerID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	amount, err := parseMoney(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	// Referenced account must exist and belong to the owner.
	if _, err := s.accountRepo.FindByIDForOwner(ctx, ownerID, req.AccountID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "Account not found")
		}
		return nil, err
	}

	transaction, err := ledger.NewTransaction(ownerID, req.AccountID, ledger.TransactionType(req.Type), amount, req.Date, req.Description)
	if err != nil {
		return nil, err
	}

	if req.DestinationAccountID != nil {
		if _, err := s.accountRepo.FindByIDForOwner(ctx, ownerID, *req.DestinationAccountID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_REFERENCE", "Destination account not found")
			}
			return nil, err
		}
		if err := transaction.SetDestinationAccount(*req.DestinationAccountID); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForOwner(ctx, ownerID, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_REFERENCE", "Category not found")
			}
			return nil, err
		}
		transaction.SetCategory(*req.CategoryID)
	}

	if req.Recurring || req.RecurrenceInterval != "" {
		if err := transaction.SetRecurrence(ledger.RecurrenceInterval(req.RecurrenceInterval)); err != nil {
			return nil, err
		}
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Save(ctx, transaction); err != nil {
		return nil, err
	}

	return ToTransactionResponse(transaction), nil
}

// Update updates an existing transaction
func (s *TransactionService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	transaction, err := s.transactionRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	amount, err := parseMoney(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.FindByIDForOwner(ctx, ownerID, req.AccountID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "Account not found")
		}
		return nil, err
	}

	if err := transaction.Update(req.AccountID, ledger.TransactionType(req.Type), amount, req.Date, req.Description); err != nil {
		return nil, err
	}

	if req.DestinationAccountID != nil {
		if _, err := s.accountRepo.FindByIDForOwner(ctx, ownerID, *req.DestinationAccountID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_REFERENCE", "Destination account not found")
			}
			return nil, err
		}
		if err := transaction.SetDestinationAccount(*req.DestinationAccountID); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForOwner(ctx, ownerID, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_REFERENCE", "Category not found")
			}
			return nil, err
		}
		transaction.SetCategory(*req.CategoryID)
	} else {
		transaction.ClearCategory()
	}

	if err := transaction.SetRecurrence(ledger.RecurrenceInterval(req.RecurrenceInterval)); err != nil {
		return nil, err
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Save(ctx, transaction); err != nil {
		return nil, err
	}

	return ToTransactionResponse(transaction), nil
}

// Delete soft-deletes a transaction
func (s *TransactionService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.transactionRepo.DeleteForOwner(ctx, ownerID, id)
}

// Balance computes the owner's aggregate balance. Signed transaction amounts
// joined to live accounts and stored account balances are counted as separate
// components; a transaction therefore contributes alongside the balance of
// the account it posted to. That dual counting matches the product's
// long-standing balance semantics.
func (s *TransactionService) Balance(ctx context.Context, ownerID uuid.UUID) (*BalanceResponse, error) {
	transactionsTotal, err := s.transactionRepo.SumSignedJoinedToAccounts(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	accountsTotal, err := s.accountRepo.SumBalances(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	total := transactionsTotal.Add(accountsTotal)
	return &BalanceResponse{
		TransactionsTotal: transactionsTotal.StringFixed(2),
		AccountsTotal:     accountsTotal.StringFixed(2),
		Total:             total.StringFixed(2),
	}, nil
}

// parseMoney parses an amount string with an optional currency code,
// defaulting to USD
func parseMoney(amount, currency string) (valueobject.Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError("INVALID_AMOUNT", "Amount is not a valid decimal")
	}
	cur := valueobject.Currency(currency)
	if cur == "" {
		cur = valueobject.DefaultCurrency
	}
	money, err := valueobject.NewMoney(d, cur)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError("INVALID_CURRENCY", "Currency is not valid")
	}
	return money, nil
}
