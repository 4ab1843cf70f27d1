package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// CustomerRepository は顧客情報の参照を担当するインターフェースです
type CustomerRepository interface {
	GetNameByID(ctx context.Context, customerID int64) (string, error)
}

// CustomerRepositoryImpl はCustomerRepositoryの実装です
type CustomerRepositoryImpl struct {
	db *DB
}

// NewCustomerRepository は新しいCustomerRepositoryを作成します
func NewCustomerRepository(db *DB) CustomerRepository {
	return &CustomerRepositoryImpl{
		db: db,
	}
}

// GetNameByID は指定された顧客IDから "名 姓" 形式の氏名を取得します
func (r *CustomerRepositoryImpl) GetNameByID(ctx context.Context, customerID int64) (string, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "CustomerRepository.GetNameByID")
	defer seg.Close(nil)

	query := `
		SELECT first_name || ' ' || last_name
		FROM customers
		WHERE id = $1`

	var name string
	err := r.db.GetContext(ctx, &name, query, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			nfErr := &NotFoundError{Resource: "customer", ID: customerID}
			seg.Close(nfErr)
			return "", nfErr
		}
		seg.Close(err)
		return "", fmt.Errorf("failed to get customer name: %w", err)
	}

	return name, nil
}
