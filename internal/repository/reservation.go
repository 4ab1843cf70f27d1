package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/lunchly-batch/internal/model"
)

type ReservationRepository interface {
	Get(ctx context.Context, id int64) (*model.Reservation, error)
	GetReservationsForCustomer(ctx context.Context, customerID int64) ([]*model.Reservation, error)
	Save(ctx context.Context, reservation *model.Reservation) error
}

type ReservationRepositoryImpl struct {
	db *DB
}

func NewReservationRepository(db *DB) *ReservationRepositoryImpl {
	return &ReservationRepositoryImpl{db: db}
}

// GetReservationsForCustomer は、指定された顧客の予約をすべて取得します
// 並び順はDBの返却順のままです
func (r *ReservationRepositoryImpl) GetReservationsForCustomer(ctx context.Context, customerID int64) ([]*model.Reservation, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "ReservationRepository.GetReservationsForCustomer")
	defer seg.Close(nil)

	query := `
		SELECT
			id,
			customer_id,
			num_guests,
			start_at,
			notes
		FROM reservations
		WHERE customer_id = $1
	`

	var rows []model.ReservationRow
	if err := r.db.SelectContext(ctx, &rows, query, customerID); err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to query reservations for customer %d: %w", customerID, err)
	}

	reservations := make([]*model.Reservation, 0, len(rows))
	for _, row := range rows {
		reservation, err := row.ToReservation()
		if err != nil {
			seg.Close(err)
			return nil, fmt.Errorf("invalid reservation row %d: %w", row.ID, err)
		}
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

// Get は主キーで予約を1件取得します
func (r *ReservationRepositoryImpl) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "ReservationRepository.Get")
	defer seg.Close(nil)

	query := `
		SELECT
			id,
			customer_id,
			num_guests,
			start_at,
			notes
		FROM reservations
		WHERE id = $1
	`

	var row model.ReservationRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			nfErr := &NotFoundError{Resource: "reservation", ID: id}
			seg.Close(nfErr)
			return nil, nfErr
		}
		seg.Close(err)
		return nil, fmt.Errorf("failed to get reservation %d: %w", id, err)
	}

	reservation, err := row.ToReservation()
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("invalid reservation row %d: %w", id, err)
	}

	return reservation, nil
}

// Save は予約を保存します
// 未採番の予約は INSERT して採番されたIDを設定し、採番済みの予約は UPDATE します
func (r *ReservationRepositoryImpl) Save(ctx context.Context, reservation *model.Reservation) error {
	ctx, seg := xray.BeginSubsegment(ctx, "ReservationRepository.Save")
	defer seg.Close(nil)

	if reservation.IsNew() {
		if err := r.insert(ctx, reservation); err != nil {
			seg.Close(err)
			return err
		}
		return nil
	}

	if err := r.update(ctx, reservation); err != nil {
		seg.Close(err)
		return err
	}
	return nil
}

func (r *ReservationRepositoryImpl) insert(ctx context.Context, reservation *model.Reservation) error {
	query := `
		INSERT INTO reservations (
			customer_id,
			num_guests,
			start_at,
			notes
		) VALUES (
			$1, $2, $3, $4
		)
		RETURNING id`

	var id int64
	err := r.db.GetContext(ctx, &id, query,
		reservation.CustomerID(),
		reservation.NumGuests(),
		reservation.StartAt(),
		reservation.Notes(),
	)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	reservation.AssignID(id)
	return nil
}

// customer_id は変更不可なので更新対象に含めない
func (r *ReservationRepositoryImpl) update(ctx context.Context, reservation *model.Reservation) error {
	query := `
		UPDATE reservations
		SET num_guests = $1,
			start_at = $2,
			notes = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		reservation.NumGuests(),
		reservation.StartAt(),
		reservation.Notes(),
		reservation.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation %d: %w", reservation.ID(), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return &NotFoundError{Resource: "reservation", ID: reservation.ID()}
	}

	return nil
}
