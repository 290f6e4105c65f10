// Package dto - input cho các endpoint thông báo.
package dto

// NotificationMarkReadInput đầu vào đánh dấu một thông báo đã đọc.
type NotificationMarkReadInput struct {
	NotificationId string `json:"notificationId" validate:"required"`
}
