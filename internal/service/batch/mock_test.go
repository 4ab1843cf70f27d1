package batch

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/uma-arai/lunchly-batch/internal/model"
	"github.com/uma-arai/lunchly-batch/internal/repository"
)

// MockReservationRepository はテスト用のインメモリリポジトリです
type MockReservationRepository struct {
	rows      map[int64]model.ReservationInput
	nextID    int64
	saveError error
	saveCalls int
}

func newMockReservationRepository(rows ...model.ReservationInput) *MockReservationRepository {
	m := &MockReservationRepository{rows: map[int64]model.ReservationInput{}, nextID: 100}
	for _, row := range rows {
		m.rows[row.ID] = row
	}
	return m
}

func (m *MockReservationRepository) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, &repository.NotFoundError{Resource: "reservation", ID: id}
	}
	return model.NewReservation(row)
}

func (m *MockReservationRepository) GetReservationsForCustomer(ctx context.Context, customerID int64) ([]*model.Reservation, error) {
	ids := make([]int64, 0)
	for id, row := range m.rows {
		if row.CustomerID == customerID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	reservations := make([]*model.Reservation, 0, len(ids))
	for _, id := range ids {
		r, err := model.NewReservation(m.rows[id])
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, nil
}

func (m *MockReservationRepository) Save(ctx context.Context, r *model.Reservation) error {
	m.saveCalls++
	if m.saveError != nil {
		return m.saveError
	}
	if r.IsNew() {
		m.nextID++
		r.AssignID(m.nextID)
	}
	m.rows[r.ID()] = model.ReservationInput{
		ID:         r.ID(),
		CustomerID: r.CustomerID(),
		NumGuests:  r.NumGuests(),
		StartAt:    r.StartAt(),
		Notes:      r.Notes(),
	}
	return nil
}

// MockCustomerRepository はテスト用のモックリポジトリです
type MockCustomerRepository struct {
	names []string
	calls []int64
}

func (m *MockCustomerRepository) GetNameByID(ctx context.Context, customerID int64) (string, error) {
	m.calls = append(m.calls, customerID)
	if customerID < 1 || int(customerID) > len(m.names) {
		return "", &repository.NotFoundError{Resource: "customer", ID: customerID}
	}
	return m.names[customerID-1], nil
}

// MockTaskReporter はSendTaskSuccess/SendTaskFailureの入力を記録します
type MockTaskReporter struct {
	inputs        []*sfn.SendTaskSuccessInput
	failureInputs []*sfn.SendTaskFailureInput
	err           error
}

func (m *MockTaskReporter) SendTaskSuccess(ctx context.Context, params *sfn.SendTaskSuccessInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sfn.SendTaskSuccessOutput{}, nil
}

func (m *MockTaskReporter) SendTaskFailure(ctx context.Context, params *sfn.SendTaskFailureInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskFailureOutput, error) {
	m.failureInputs = append(m.failureInputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sfn.SendTaskFailureOutput{}, nil
}
