package payroll_test

import (
	"context"
	"testing"

	"krishr/internal/payroll"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The repository bound through WithTx must execute on the transaction's
// connection, so a rollback undoes every statement it ran. The pool
// connection here has no expectations: any statement leaking onto it
// fails the test.
func TestPayrollRepository_WithTx_RunsOnTransaction(t *testing.T) {
	ctx := context.Background()

	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
	assert.NoError(t, err)

	repo := payroll.NewRepository(gormDB)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	previewID := uuid.New()

	txMock.ExpectBegin()
	txMock.ExpectExec(`UPDATE "payroll_previews" SET "status"`).
		WithArgs(payroll.StatusApproved, previewID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectRollback()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	err = repo.WithTx(tx).UpdatePreviewStatus(ctx, previewID, payroll.StatusApproved)
	assert.NoError(t, err)

	assert.NoError(t, tx.Rollback())

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
