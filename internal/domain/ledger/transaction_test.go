package ledger

import (
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(100)

	assert.True(t, TransactionTypeIncome.SignedAmount(amount).Equal(decimal.NewFromInt(100)))
	assert.True(t, TransactionTypeExpense.SignedAmount(amount).Equal(decimal.NewFromInt(-100)))
	assert.True(t, TransactionTypeTransfer.SignedAmount(amount).IsZero())
}

func TestTransactionTypeIsValid(t *testing.T) {
	assert.True(t, TransactionTypeIncome.IsValid())
	assert.True(t, TransactionTypeExpense.IsValid())
	assert.True(t, TransactionTypeTransfer.IsValid())
	assert.False(t, TransactionType("REFUND").IsValid())
}

func TestNewTransactionRejectsNegativeAmount(t *testing.T) {
	neg := valueobject.NewMoneyUSD(decimal.NewFromInt(-5))
	_, err := NewTransaction(uuid.New(), uuid.New(), TransactionTypeExpense, neg, time.Now(), "coffee")
	assert.Error(t, err)
}

func TestNewTransactionRejectsInvalidType(t *testing.T) {
	amt := valueobject.NewMoneyUSD(decimal.NewFromInt(5))
	_, err := NewTransaction(uuid.New(), uuid.New(), TransactionType("REFUND"), amt, time.Now(), "")
	assert.Error(t, err)
}

func TestTransferRequiresDestinationAccount(t *testing.T) {
	amt := valueobject.NewMoneyUSD(decimal.NewFromInt(50))
	tx, err := NewTransaction(uuid.New(), uuid.New(), TransactionTypeTransfer, amt, time.Now(), "move")
	require.NoError(t, err)

	// Invalid until a destination is set.
	assert.Error(t, tx.Validate())

	require.NoError(t, tx.SetDestinationAccount(uuid.New()))
	assert.NoError(t, tx.Validate())
}

func TestSetDestinationAccountRejectsSource(t *testing.T) {
	amt := valueobject.NewMoneyUSD(decimal.NewFromInt(50))
	source := uuid.New()
	tx, err := NewTransaction(uuid.New(), source, TransactionTypeTransfer, amt, time.Now(), "")
	require.NoError(t, err)

	assert.Error(t, tx.SetDestinationAccount(source))
	assert.Error(t, tx.SetDestinationAccount(uuid.Nil))
}

func TestSetDestinationAccountOnlyForTransfers(t *testing.T) {
	amt := valueobject.NewMoneyUSD(decimal.NewFromInt(50))
	tx, err := NewTransaction(uuid.New(), uuid.New(), TransactionTypeExpense, amt, time.Now(), "")
	require.NoError(t, err)

	assert.Error(t, tx.SetDestinationAccount(uuid.New()))
}

func TestUpdateClearsDestinationWhenLeavingTransfer(t *testing.T) {
	amt := valueobject.NewMoneyUSD(decimal.NewFromInt(50))
	tx, err := NewTransaction(uuid.New(), uuid.New(), TransactionTypeTransfer, amt, time.Now(), "")
	require.NoError(t, err)
	require.NoError(t, tx.SetDestinationAccount(uuid.New()))

	require.NoError(t, tx.Update(tx.AccountID, TransactionTypeExpense, amt, time.Now(), "now an expense"))
	assert.Nil(t, tx.DestinationAccountID)
}

func TestAccountTypeBalanceSign(t *testing.T) {
	one := decimal.NewFromInt(1)
	minusOne := decimal.NewFromInt(-1)

	assert.True(t, AccountTypeChecking.BalanceSign().Equal(one))
	assert.True(t, AccountTypeSavings.BalanceSign().Equal(one))
	assert.True(t, AccountTypeCreditCard.BalanceSign().Equal(minusOne))
}
