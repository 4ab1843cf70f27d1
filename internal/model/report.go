package model

import "time"

// ReservationSummary は顧客向けレポートの1予約分です
type ReservationSummary struct {
	ID               int64     `json:"id"`
	NumGuests        int       `json:"num_guests"`
	StartAt          time.Time `json:"start_at"`
	FormattedStartAt string    `json:"formatted_start_at"`
	Notes            string    `json:"notes"`
}

// CustomerReservationReport は顧客ごとの予約一覧です
type CustomerReservationReport struct {
	CustomerID   int64                `json:"customer_id"`
	CustomerName string               `json:"customer_name"`
	Reservations []ReservationSummary `json:"reservations"`
}

// NewCustomerReservationReport は顧客の予約一覧からレポートを作成します
// 予約が0件でも Reservations は空配列になります
func NewCustomerReservationReport(customerID int64, customerName string, reservations []*Reservation) CustomerReservationReport {
	summaries := make([]ReservationSummary, 0, len(reservations))
	for _, r := range reservations {
		summaries = append(summaries, ReservationSummary{
			ID:               r.ID(),
			NumGuests:        r.NumGuests(),
			StartAt:          r.StartAt(),
			FormattedStartAt: r.FormattedStartAt(),
			Notes:            r.Notes(),
		})
	}

	return CustomerReservationReport{
		CustomerID:   customerID,
		CustomerName: customerName,
		Reservations: summaries,
	}
}
