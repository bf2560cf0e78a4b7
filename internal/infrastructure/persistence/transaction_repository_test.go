package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_FindByIDForOwner_NotFound(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	ownerID := uuid.New()
	txID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE owner_id = \$1 AND id = \$2`).
		WithArgs(ownerID, txID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewGormTransactionRepository(db.DB)
	_, err := repo.FindByIDForOwner(context.Background(), ownerID, txID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTransactionRepository_DeleteForOwner_NotFound(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	ownerID := uuid.New()
	txID := uuid.New()

	// Soft delete issues an UPDATE setting deleted_at.
	mock.ExpectExec(`UPDATE "transactions" SET "deleted_at"=`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewGormTransactionRepository(db.DB)
	err := repo.DeleteForOwner(context.Background(), ownerID, txID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTransactionRepository_SumSignedJoinedToAccounts(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE transactions\.type`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("123.45"))

	repo := NewGormTransactionRepository(db.DB)
	total, err := repo.SumSignedJoinedToAccounts(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, "123.45", total.String())
}

func TestTransactionRepository_CountForOwner_AppliesTypeFilter(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	ownerID := uuid.New()
	expense := ledger.TransactionTypeExpense

	mock.ExpectQuery(`SELECT count\(\*\) FROM "transactions" WHERE owner_id = \$1 AND type = \$2`).
		WithArgs(ownerID, expense).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := NewGormTransactionRepository(db.DB)
	count, err := repo.CountForOwner(context.Background(), ownerID, ledger.TransactionFilter{Type: &expense})
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestTransactionRepository_FindAllForOwner_RejectsUnknownSortField(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	ownerID := uuid.New()

	// An unlisted sort field falls back to date DESC.
	mock.ExpectQuery(`ORDER BY date DESC, created_at DESC`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewGormTransactionRepository(db.DB)
	_, err := repo.FindAllForOwner(context.Background(), ownerID, ledger.TransactionFilter{
		SortBy:    "owner_id; --",
		SortOrder: "sideways",
	})
	require.NoError(t, err)
}

func TestTransactionRepository_FindAllForOwner_SortsByRequestedField(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	ownerID := uuid.New()

	mock.ExpectQuery(`ORDER BY amount ASC, created_at DESC`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewGormTransactionRepository(db.DB)
	_, err := repo.FindAllForOwner(context.Background(), ownerID, ledger.TransactionFilter{
		SortBy:    "amount",
		SortOrder: "asc",
	})
	require.NoError(t, err)
}

func TestTransactionRepository_FindInPeriod_ExcludesTransfers(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	ownerID := uuid.New()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE owner_id = \$1 AND \(type <> \$2 AND date >= \$3 AND date < \$4\)`).
		WithArgs(ownerID, ledger.TransactionTypeTransfer, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "type", "amount", "currency", "date"}).
			AddRow(uuid.New(), ownerID, "INCOME", "100.00", "USD", from))

	repo := NewGormTransactionRepository(db.DB)
	txs, err := repo.FindInPeriod(context.Background(), ownerID, from, to)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, ledger.TransactionTypeIncome, txs[0].Type)
}
