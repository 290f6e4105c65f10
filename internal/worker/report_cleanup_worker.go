// Package worker - các background worker chạy định kỳ.
package worker

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "task_flow/internal/api/base/service"
	"task_flow/internal/common"
	"task_flow/internal/delivery"
	"task_flow/internal/global"
	"task_flow/internal/logger"
)

// ReportCleanupWorker dọn các delivery report cũ.
// Report chỉ phục vụ tra soát việc gửi thông báo nên không cần giữ lâu;
// worker chạy định kỳ và xóa các report quá hạn retention.
type ReportCleanupWorker struct {
	reportService *basesvc.BaseServiceMongoImpl[delivery.DeliveryReport]
	interval      time.Duration // Khoảng thời gian giữa các lần chạy
	retention     time.Duration // Tuổi tối đa của report trước khi bị xóa
}

// NewReportCleanupWorker tạo mới ReportCleanupWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 1 giờ)
//   - retention: Tuổi tối đa của report (mặc định: 30 ngày)
func NewReportCleanupWorker(interval time.Duration, retention time.Duration) (*ReportCleanupWorker, error) {
	reportCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryReports)
	if !exist {
		return nil, common.ErrNotFound
	}
	if interval < time.Minute {
		interval = time.Hour
	}
	if retention < time.Hour {
		retention = 30 * 24 * time.Hour
	}
	return &ReportCleanupWorker{
		reportService: basesvc.NewBaseServiceMongo[delivery.DeliveryReport](reportCollection),
		interval:      interval,
		retention:     retention,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi interval xóa các report có createdAt
// cũ hơn retention.
func (w *ReportCleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"retention": w.retention.String(),
	}).Info("🧹 [REPORT_CLEANUP] Starting Report Cleanup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🧹 [REPORT_CLEANUP] Report Cleanup Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🧹 [REPORT_CLEANUP] Panic khi dọn delivery reports, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				cutoff := time.Now().Add(-w.retention).UnixMilli()
				deleted, err := w.reportService.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
				if err != nil {
					log.WithError(err).Error("🧹 [REPORT_CLEANUP] Lỗi xóa delivery reports cũ")
					return
				}

				if deleted > 0 {
					log.WithFields(map[string]interface{}{
						"deleted": deleted,
					}).Info("🧹 [REPORT_CLEANUP] Đã dọn delivery reports cũ")
				}
				// deleted = 0 thì không log (giảm log noise)
			}()
		}
	}
}
