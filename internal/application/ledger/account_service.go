package ledger

import (
	"context"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService handles account-related business operations
type AccountService struct {
	accountRepo ledger.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo ledger.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// List retrieves all accounts for an owner
func (s *AccountService) List(ctx context.Context, ownerID uuid.UUID) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *ToAccountResponse(&accounts[i])
	}
	return responses, nil
}

// GetByID retrieves an account by ID
func (s *AccountService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToAccountResponse(account), nil
}

// Create creates a new account
func (s *AccountService) Create(ctx context.Context, ownerID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	balance, err := parseOptionalDecimal(req.Balance)
	if err != nil {
		return nil, err
	}

	account, err := ledger.NewAccount(ownerID, req.Name, ledger.AccountType(req.Type), balance)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != "" {
		account.DisplayName = req.DisplayName
	}
	account.BankName = req.BankName
	if req.IsDefault {
		account.SetDefault(true)
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	return ToAccountResponse(account), nil
}

// Update updates an existing account
func (s *AccountService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	balance := account.Balance
	if req.Balance != "" {
		balance, err = parseOptionalDecimal(req.Balance)
		if err != nil {
			return nil, err
		}
	}

	if err := account.Update(req.Name, req.DisplayName, ledger.AccountType(req.Type), balance, req.BankName); err != nil {
		return nil, err
	}
	account.SetDefault(req.IsDefault)

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	return ToAccountResponse(account), nil
}

// Delete soft-deletes an account. Transactions referencing it stop
// contributing to the aggregate balance while the account is deleted.
func (s *AccountService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.accountRepo.DeleteForOwner(ctx, ownerID, id)
}

// parseOptionalDecimal parses a decimal string, treating empty as zero
func parseOptionalDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_AMOUNT", "Balance is not a valid decimal")
	}
	return d, nil
}
