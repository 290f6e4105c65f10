// Package notificationsvc - service cho thông báo in-app của người dùng.
package notificationsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "task_flow/internal/api/base/models"
	basesvc "task_flow/internal/api/base/service"
	models "task_flow/internal/api/notification/models"
	"task_flow/internal/common"
	"task_flow/internal/global"
	"task_flow/internal/utility"
)

// NotificationService là cấu trúc chứa các phương thức liên quan đến notification
type NotificationService struct {
	*basesvc.BaseServiceMongoImpl[models.Notification]
}

// NewNotificationService tạo mới NotificationService
func NewNotificationService() (*NotificationService, error) {
	notificationCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Notifications)
	if !exist {
		return nil, fmt.Errorf("failed to get notifications collection: %v", common.ErrNotFound)
	}
	return &NotificationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Notification](notificationCollection),
	}, nil
}

// ListForRecipient trả về thông báo của một người nhận, mới nhất trước, có phân trang.
func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.Notification], error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, bson.M{"recipient": recipientID}, page, limit, opts)
}

// CountUnread đếm số thông báo chưa đọc của một người nhận.
func (s *NotificationService) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	return s.CountDocuments(ctx, bson.M{"recipient": recipientID, "isRead": false})
}

// MarkRead đánh dấu một thông báo là đã đọc. Chỉ người nhận mới đánh dấu được.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID primitive.ObjectID, recipientID primitive.ObjectID) (models.Notification, error) {
	filter := bson.M{
		"_id":       notificationID,
		"recipient": recipientID,
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isRead": true,
			"readAt": utility.CurrentTimeInMilli(),
		},
	}
	return s.UpdateOne(ctx, filter, updateData, nil)
}

// MarkAllRead đánh dấu toàn bộ thông báo chưa đọc của một người nhận là đã đọc.
// Trả về số thông báo được cập nhật.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	filter := bson.M{"recipient": recipientID, "isRead": false}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isRead": true,
			"readAt": utility.CurrentTimeInMilli(),
		},
	}
	return s.UpdateMany(ctx, filter, updateData, nil)
}
