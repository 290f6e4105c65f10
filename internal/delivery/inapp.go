package delivery

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "task_flow/internal/api/base/service"
	notifmodels "task_flow/internal/api/notification/models"
	"task_flow/internal/common"
	"task_flow/internal/global"
)

// InAppChannel ghi thông báo in-app vào collection notifications.
type InAppChannel struct {
	notificationService *basesvc.BaseServiceMongoImpl[notifmodels.Notification]
}

// NewInAppChannel tạo InAppChannel
func NewInAppChannel() (*InAppChannel, error) {
	notificationCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Notifications)
	if !exist {
		return nil, fmt.Errorf("failed to get notifications collection: %v", common.ErrNotFound)
	}
	return &InAppChannel{
		notificationService: basesvc.NewBaseServiceMongo[notifmodels.Notification](notificationCollection),
	}, nil
}

// SendNotification tạo một notification document cho người nhận.
func (c *InAppChannel) SendNotification(ctx context.Context, recipient Recipient, event Event) error {
	var title string
	switch event.Type {
	case notifmodels.TypeMessagePosted:
		title = fmt.Sprintf("Tin nhắn mới trong kênh %s", event.ChannelName)
	default:
		title = fmt.Sprintf("Bạn được thêm vào kênh %s", event.ChannelName)
	}

	notification := notifmodels.Notification{
		Recipient:      recipient.ID,
		RecipientEmail: recipient.Email,
		Type:           event.Type,
		Title:          title,
		Body:           event.Body,
		SubmissionID:   event.SubmissionID,
		ChannelID:      event.ChannelID,
		IsRead:         false,
		ExpireAt:       primitive.NewDateTimeFromTime(time.Now()),
	}
	_, err := c.notificationService.InsertOne(ctx, notification)
	return err
}
