package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_GetNameByID(t *testing.T) {
	ctx := newTestContext(t)
	db, mock := newMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(`FROM customers WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Anna Smith"))

	name, err := repo.GetNameByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Anna Smith", name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_GetNameByID_NotFound(t *testing.T) {
	ctx := newTestContext(t)
	db, mock := newMockDB(t)
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(`FROM customers WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	_, err := repo.GetNameByID(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}
