// Package models - model Notification (thông báo in-app) thuộc domain notification.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các loại thông báo phát ra từ engine fan-out.
const (
	TypeChannelCreated = "channel_created"
	TypeMessagePosted  = "message_posted"
)

// Notification là một thông báo in-app cho một người nhận.
// Thông báo cũ tự hết hạn sau 30 ngày (TTL index trên expireAt).
type Notification struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Recipient      primitive.ObjectID `json:"recipient" bson:"recipient" index:"single"`
	RecipientEmail string             `json:"recipientEmail" bson:"recipientEmail"`
	Type           string             `json:"type" bson:"type"`
	Title          string             `json:"title" bson:"title"`
	Body           string             `json:"body" bson:"body"`
	SubmissionID   primitive.ObjectID `json:"submissionId,omitempty" bson:"submissionId,omitempty"`
	ChannelID      primitive.ObjectID `json:"channelId,omitempty" bson:"channelId,omitempty"`
	IsRead         bool               `json:"isRead" bson:"isRead"`
	ReadAt         int64              `json:"readAt,omitempty" bson:"readAt,omitempty"`
	ExpireAt       primitive.DateTime `json:"-" bson:"expireAt" index:"ttl:2592000"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// NotificationPaginateResult đại diện cho kết quả phân trang Notification
type NotificationPaginateResult struct {
	Page      int64          `json:"page" bson:"page"`
	Limit     int64          `json:"limit" bson:"limit"`
	ItemCount int64          `json:"itemCount" bson:"itemCount"`
	Items     []Notification `json:"items" bson:"items"`
}
