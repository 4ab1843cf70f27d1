package model

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ReservationInput は予約を生成するための入力です
// バッチのタスクトークン(JSON)からもこの形で受け取ります
type ReservationInput struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	NumGuests  int       `json:"num_guests"`
	StartAt    time.Time `json:"start_at"`
	Notes      string    `json:"notes"`
}

// Reservation はテーブル予約のドメインモデルです
// フィールドは非公開とし、更新は必ずSetterの検証を通します
type Reservation struct {
	id         int64
	customerID int64
	numGuests  int
	startAt    time.Time
	notes      string
}

// NewReservation は入力を検証して予約を作成します
// 検証は各Setterに任せ、最初に失敗したフィールドのエラーを返します
func NewReservation(in ReservationInput) (*Reservation, error) {
	if err := validate.Var(in.ID, "gte=0"); err != nil {
		return nil, &ValidationError{Field: "id", Message: "must not be negative"}
	}

	r := &Reservation{id: in.ID}
	if err := r.SetCustomerID(in.CustomerID); err != nil {
		return nil, err
	}
	if err := r.SetNumGuests(in.NumGuests); err != nil {
		return nil, err
	}
	if err := r.SetStartAt(in.StartAt); err != nil {
		return nil, err
	}
	r.SetNotes(in.Notes)

	return r, nil
}

func (r *Reservation) ID() int64 {
	return r.id
}

// IsNew は未保存(IDが未採番)かどうかを返します
func (r *Reservation) IsNew() bool {
	return r.id == 0
}

// AssignID は保存時に採番されたIDを設定します
// 採番済みの予約に対しては何もしません
func (r *Reservation) AssignID(id int64) {
	if r.id == 0 {
		r.id = id
	}
}

func (r *Reservation) CustomerID() int64 {
	return r.customerID
}

// SetCustomerID は顧客IDを設定します。一度設定した顧客IDは変更できません
func (r *Reservation) SetCustomerID(id int64) error {
	if err := validate.Var(id, "required,gte=1"); err != nil {
		return &ValidationError{Field: "customer_id", Message: "customer id is required"}
	}
	if r.customerID != 0 && r.customerID != id {
		return &ValidationError{Field: "customer_id", Message: "cannot change customer id"}
	}
	r.customerID = id
	return nil
}

func (r *Reservation) NumGuests() int {
	return r.numGuests
}

// SetNumGuests は人数を設定します。1人未満はエラーになります
func (r *Reservation) SetNumGuests(n int) error {
	if err := validate.Var(n, "gte=1"); err != nil {
		return &ValidationError{Field: "num_guests", Message: "cannot have fewer than 1 person"}
	}
	r.numGuests = n
	return nil
}

func (r *Reservation) StartAt() time.Time {
	return r.startAt
}

// SetStartAt は開始日時を設定します。ゼロ値の日時はエラーになります
func (r *Reservation) SetStartAt(t time.Time) error {
	if t.IsZero() {
		return &ValidationError{Field: "start_at", Message: "not a valid start date"}
	}
	r.startAt = t
	return nil
}

// FormattedStartAt は開始日時を "April 5th 2021, 3:00 pm" の形式で返します
func (r *Reservation) FormattedStartAt() string {
	t := r.startAt
	return fmt.Sprintf("%s %s %d, %s", t.Month(), humanize.Ordinal(t.Day()), t.Year(), t.Format("3:04 pm"))
}

func (r *Reservation) Notes() string {
	return r.notes
}

// SetNotes はメモを設定します
func (r *Reservation) SetNotes(notes string) {
	r.notes = notes
}

// ReservationRow は reservations テーブルの1行です
type ReservationRow struct {
	ID         int64          `db:"id"`
	CustomerID int64          `db:"customer_id"`
	NumGuests  int            `db:"num_guests"`
	StartAt    time.Time      `db:"start_at"`
	Notes      sql.NullString `db:"notes"`
}

// ToReservation は行データを検証して予約に変換します
// notes が NULL の場合は空文字になります
func (row ReservationRow) ToReservation() (*Reservation, error) {
	return NewReservation(ReservationInput{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		NumGuests:  row.NumGuests,
		StartAt:    row.StartAt,
		Notes:      row.Notes.String,
	})
}

// ReservationEvent は予約の保存完了時に発行されるイベントの構造体
type ReservationEvent struct {
	ReservationID    int64     `json:"reservation_id"`
	CustomerID       int64     `json:"customer_id"`
	NumGuests        int       `json:"num_guests"`
	StartAt          time.Time `json:"start_at"`
	FormattedStartAt string    `json:"formatted_start_at"`
	Created          bool      `json:"created"`
}

// NewReservationEvent は保存済みの予約からイベントを作成します
func NewReservationEvent(r *Reservation, created bool) ReservationEvent {
	return ReservationEvent{
		ReservationID:    r.ID(),
		CustomerID:       r.CustomerID(),
		NumGuests:        r.NumGuests(),
		StartAt:          r.StartAt(),
		FormattedStartAt: r.FormattedStartAt(),
		Created:          created,
	}
}
