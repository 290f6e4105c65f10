// Package delivery - engine fan-out thông báo: mỗi người nhận hai delivery độc lập
// (in-app + email), chạy song song và join kiểu settle-all. Lỗi gửi chỉ được log
// và ghi vào DeliveryReport, không bao giờ nổi lên caller; mỗi delivery chỉ thử
// đúng một lần (không queue, không retry).
package delivery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "task_flow/internal/api/base/service"
	"task_flow/internal/common"
	"task_flow/internal/global"
	"task_flow/internal/logger"
)

// Recipient là một người nhận fan-out.
type Recipient struct {
	ID          primitive.ObjectID
	RoleTag     string
	Email       string
	DisplayName string
}

// Event là nội dung cần thông báo tới người nhận.
type Event struct {
	Type         string // models.TypeChannelCreated | models.TypeMessagePosted
	SubmissionID primitive.ObjectID
	ChannelID    primitive.ObjectID
	ChannelName  string
	TaskTitle    string
	ActorName    string
	Body         string
}

// DeliveryReport ghi lại kết quả gửi cho một người nhận (cả hai kênh).
type DeliveryReport struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EventType         string             `json:"eventType" bson:"eventType"`
	SubmissionID      primitive.ObjectID `json:"submissionId,omitempty" bson:"submissionId,omitempty"`
	ChannelID         primitive.ObjectID `json:"channelId,omitempty" bson:"channelId,omitempty"`
	RecipientID       primitive.ObjectID `json:"recipientId" bson:"recipientId" index:"single"`
	RecipientEmail    string             `json:"recipientEmail" bson:"recipientEmail"`
	NotificationSent  bool               `json:"notificationSent" bson:"notificationSent"`
	NotificationError string             `json:"notificationError,omitempty" bson:"notificationError,omitempty"`
	EmailSent         bool               `json:"emailSent" bson:"emailSent"`
	EmailError        string             `json:"emailError,omitempty" bson:"emailError,omitempty"`
	CreatedAt         int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt         int64              `json:"updatedAt" bson:"updatedAt"`
}

// NotificationSender gửi thông báo in-app cho một người nhận.
type NotificationSender interface {
	SendNotification(ctx context.Context, recipient Recipient, event Event) error
}

// EmailSender gửi email cho một người nhận.
type EmailSender interface {
	SendEmail(ctx context.Context, recipient Recipient, event Event) error
}

// ReportSink lưu DeliveryReport sau khi fan-out settle.
type ReportSink interface {
	SaveReport(ctx context.Context, report DeliveryReport) error
}

// mongoReportSink lưu report vào collection delivery_reports.
type mongoReportSink struct {
	reportService *basesvc.BaseServiceMongoImpl[DeliveryReport]
}

func (s *mongoReportSink) SaveReport(ctx context.Context, report DeliveryReport) error {
	_, err := s.reportService.InsertOne(ctx, report)
	return err
}

// Dispatcher điều phối fan-out.
type Dispatcher struct {
	notifier NotificationSender
	emailer  EmailSender
	sink     ReportSink
	timeout  time.Duration
}

// NewDispatcher tạo Dispatcher production: in-app ghi vào collection notifications,
// email gửi qua SMTP (gomail), report lưu vào collection delivery_reports.
func NewDispatcher() (*Dispatcher, error) {
	reportCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryReports)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_reports collection: %v", common.ErrNotFound)
	}
	notifier, err := NewInAppChannel()
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		notifier: notifier,
		emailer:  NewEmailChannel(),
		sink:     &mongoReportSink{reportService: basesvc.NewBaseServiceMongo[DeliveryReport](reportCollection)},
		timeout:  10 * time.Second,
	}, nil
}

// NewDispatcherWith tạo Dispatcher với các kênh tùy ý (dùng trong test).
func NewDispatcherWith(notifier NotificationSender, emailer EmailSender, sink ReportSink, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{notifier: notifier, emailer: emailer, sink: sink, timeout: timeout}
}

// Dispatch fan-out một event tới danh sách người nhận.
// Mỗi người nhận hai delivery độc lập (in-app + email) chạy trong goroutine riêng
// với timeout từng cuộc gọi; panic trong một delivery không ảnh hưởng các delivery
// khác. Hàm chờ toàn bộ settle rồi trả về report cho từng người nhận.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []Recipient, event Event) []DeliveryReport {
	log := logger.GetAppLogger()
	reports := make([]DeliveryReport, len(recipients))

	var wg sync.WaitGroup
	for i := range recipients {
		recipient := recipients[i]
		reports[i] = DeliveryReport{
			EventType:      event.Type,
			SubmissionID:   event.SubmissionID,
			ChannelID:      event.ChannelID,
			RecipientID:    recipient.ID,
			RecipientEmail: recipient.Email,
		}

		// Hai goroutine ghi vào hai nhóm field tách biệt của cùng một report
		wg.Add(2)
		go func(report *DeliveryReport) {
			defer wg.Done()
			err := d.attempt(func(cctx context.Context) error {
				return d.notifier.SendNotification(cctx, recipient, event)
			})
			if err != nil {
				report.NotificationError = err.Error()
				log.WithFields(map[string]interface{}{
					"recipient": recipient.Email,
					"eventType": event.Type,
					"error":     err.Error(),
				}).Warn("🔔 [FANOUT] Gửi thông báo in-app thất bại")
				return
			}
			report.NotificationSent = true
		}(&reports[i])

		go func(report *DeliveryReport) {
			defer wg.Done()
			err := d.attempt(func(cctx context.Context) error {
				return d.emailer.SendEmail(cctx, recipient, event)
			})
			if err != nil {
				report.EmailError = err.Error()
				log.WithFields(map[string]interface{}{
					"recipient": recipient.Email,
					"eventType": event.Type,
					"error":     err.Error(),
				}).Warn("📧 [FANOUT] Gửi email thất bại")
				return
			}
			report.EmailSent = true
		}(&reports[i])
	}
	wg.Wait()

	for _, report := range reports {
		if report.NotificationError != "" || report.EmailError != "" {
			logger.LogDelivery("failed", map[string]interface{}{
				"event_type":         report.EventType,
				"recipient":          report.RecipientEmail,
				"notification_error": report.NotificationError,
				"email_error":        report.EmailError,
			})
		}
	}

	if d.sink != nil {
		for _, report := range reports {
			if err := d.sink.SaveReport(ctx, report); err != nil {
				log.WithError(err).Warn("Không thể lưu delivery report")
			}
		}
	}
	return reports
}

// attempt chạy một delivery với recover + timeout riêng.
// Delivery không gắn vào lifecycle của request: request xong sớm
// không được phép cắt ngang thư đang gửi.
func (d *Dispatcher) attempt(fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic trong delivery: %v", r)
		}
	}()
	cctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	return fn(cctx)
}
