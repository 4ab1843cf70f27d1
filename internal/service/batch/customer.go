package batch

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/lunchly-batch/internal/common/config"
	"github.com/uma-arai/lunchly-batch/internal/common/database"
	"github.com/uma-arai/lunchly-batch/internal/common/utils"
	"github.com/uma-arai/lunchly-batch/internal/model"
	"github.com/uma-arai/lunchly-batch/internal/repository"
)

// CustomerReservationBatchService は顧客ごとの予約レポート作成バッチを担当します
type CustomerReservationBatchService struct {
	customerIDs     []int64
	db              *database.DB
	reservationRepo repository.ReservationRepository
	customerRepo    repository.CustomerRepository
	sfnClient       TaskReporter
	cfg             *config.Config
}

// NewCustomerReservationBatchService は新しいCustomerReservationBatchServiceを作成します
func NewCustomerReservationBatchService(cfg *config.Config, sfnClient TaskReporter) (*CustomerReservationBatchService, error) {
	db, err := database.NewDB(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	repoDb := repository.NewDB(db.DB)

	return &CustomerReservationBatchService{
		db:              db,
		reservationRepo: repository.NewReservationRepository(repoDb),
		customerRepo:    repository.NewCustomerRepository(repoDb),
		sfnClient:       sfnClient,
		cfg:             cfg,
	}, nil
}

// Close は終了処理を行います
func (s *CustomerReservationBatchService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetArgs はレポート対象の顧客IDを設定します
func (s *CustomerReservationBatchService) SetArgs(customerIDs []int64) {
	s.customerIDs = customerIDs
}

// Run は顧客ごとの予約レポートを作成し、タスク結果として通知します
func (s *CustomerReservationBatchService) Run(ctx context.Context) error {
	ctx, seg := xray.BeginSubsegment(ctx, "CustomerReservationBatchService.Run")
	defer seg.Close(nil)

	startTime := time.Now()

	customerIDs := uniqueCustomerIDs(s.customerIDs)
	log.Printf("Starting customer reservation report for %d customers...", len(customerIDs))

	reports := make([]model.CustomerReservationReport, 0, len(customerIDs))
	for _, customerID := range customerIDs {
		report, err := s.buildReport(ctx, customerID)
		if err != nil {
			seg.Close(err)
			return utils.GetStackWithError(err)
		}
		reports = append(reports, report)
	}

	if err := sendTaskSuccess(ctx, s.sfnClient, s.cfg.SFN.TaskToken, map[string]any{
		"reports": reports,
	}); err != nil {
		seg.Close(err)
		return utils.GetStackWithError(err)
	}

	duration := time.Since(startTime)
	if seg != nil {
		if err := seg.AddMetadata("customer_count", len(customerIDs)); err != nil {
			log.Printf("Failed to add customer_count metadata: %v", err)
		}
	}

	log.Printf("Customer reservation report completed successfully. Duration: %v", duration)
	return nil
}

func (s *CustomerReservationBatchService) buildReport(ctx context.Context, customerID int64) (model.CustomerReservationReport, error) {
	name, err := s.customerRepo.GetNameByID(ctx, customerID)
	if err != nil {
		return model.CustomerReservationReport{}, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	reservations, err := s.reservationRepo.GetReservationsForCustomer(ctx, customerID)
	if err != nil {
		return model.CustomerReservationReport{}, fmt.Errorf("failed to get reservations for customer %d: %w", customerID, err)
	}

	return model.NewCustomerReservationReport(customerID, name, reservations), nil
}

// 同じ顧客を二度問い合わせないよう、入力順を保ったまま重複を除く
func uniqueCustomerIDs(ids []int64) []int64 {
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(unique, id) {
			continue
		}
		unique = append(unique, id)
	}
	return unique
}
