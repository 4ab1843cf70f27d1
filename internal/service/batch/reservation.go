package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/lunchly-batch/internal/common/config"
	"github.com/uma-arai/lunchly-batch/internal/common/database"
	"github.com/uma-arai/lunchly-batch/internal/common/utils"
	"github.com/uma-arai/lunchly-batch/internal/model"
	"github.com/uma-arai/lunchly-batch/internal/repository"
)

// ReservationBatchService は予約の登録・更新バッチ処理を担当します
type ReservationBatchService struct {
	args            []model.ReservationInput
	db              *database.DB
	reservationRepo repository.ReservationRepository
	sfnClient       TaskReporter
	cfg             *config.Config
}

// NewReservationBatchService は新しいReservationBatchServiceを作成します
func NewReservationBatchService(cfg *config.Config, sfnClient TaskReporter) (*ReservationBatchService, error) {
	db, err := database.NewDB(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	return &ReservationBatchService{
		db:              db,
		reservationRepo: repository.NewReservationRepository(repository.NewDB(db.DB)),
		sfnClient:       sfnClient,
		cfg:             cfg,
	}, nil
}

// Close は終了処理を行います
func (s *ReservationBatchService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetArgs は予約バッチ処理の引数を設定します
func (s *ReservationBatchService) SetArgs(args []model.ReservationInput) {
	s.args = args
}

// Run は予約バッチ処理を実行します
// 1件でも失敗した場合はすべてのエラーをまとめて返し、タスク成功は通知しません
func (s *ReservationBatchService) Run(ctx context.Context) error {
	ctx, seg := xray.BeginSubsegment(ctx, "ReservationBatchService.Run")
	defer seg.Close(nil)

	startTime := time.Now()
	log.Printf("Starting reservation batch process for %d reservations...", len(s.args))

	events, errs := s.saveReservations(ctx, s.args)
	if len(errs) > 0 {
		err := fmt.Errorf("failed to save %d of %d reservations: %w", len(errs), len(s.args), errors.Join(errs...))
		seg.Close(err)
		return utils.GetStackWithError(err)
	}

	if err := sendTaskSuccess(ctx, s.sfnClient, s.cfg.SFN.TaskToken, map[string]any{
		"reservations": events,
	}); err != nil {
		seg.Close(err)
		return utils.GetStackWithError(err)
	}

	duration := time.Since(startTime)
	if seg != nil {
		if err := seg.AddMetadata("duration", duration.String()); err != nil {
			log.Printf("Failed to add duration metadata: %v", err)
		}
	}

	log.Printf("Reservation batch process completed successfully. Duration: %v", duration)
	return nil
}

// saveReservations は入力を1件ずつ保存し、保存できた予約のイベントを返します
// 失敗した入力はログに残して次の入力へ進みます
func (s *ReservationBatchService) saveReservations(ctx context.Context, inputs []model.ReservationInput) ([]model.ReservationEvent, []error) {
	events := make([]model.ReservationEvent, 0, len(inputs))
	var errs []error

	for i, in := range inputs {
		reservation, err := s.buildReservation(ctx, in)
		if err != nil {
			log.Printf("Skipping reservation input #%d: %v", i, err)
			errs = append(errs, fmt.Errorf("input #%d: %w", i, err))
			continue
		}

		created := reservation.IsNew()
		if err := s.reservationRepo.Save(ctx, reservation); err != nil {
			log.Printf("Failed to save reservation input #%d: %v", i, err)
			errs = append(errs, fmt.Errorf("input #%d: %w", i, err))
			continue
		}

		events = append(events, model.NewReservationEvent(reservation, created))
	}

	return events, errs
}

// buildReservation は入力から保存対象の予約を組み立てます
// IDがない場合は新規作成、ある場合は既存の予約を取得して変更を適用します
func (s *ReservationBatchService) buildReservation(ctx context.Context, in model.ReservationInput) (*model.Reservation, error) {
	if in.ID == 0 {
		return model.NewReservation(in)
	}

	reservation, err := s.reservationRepo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	// 顧客IDは省略可。指定された場合は既存と同じでなければならない
	if in.CustomerID != 0 {
		if err := reservation.SetCustomerID(in.CustomerID); err != nil {
			return nil, err
		}
	}
	if err := reservation.SetNumGuests(in.NumGuests); err != nil {
		return nil, err
	}
	if err := reservation.SetStartAt(in.StartAt); err != nil {
		return nil, err
	}
	reservation.SetNotes(in.Notes)

	return reservation, nil
}
