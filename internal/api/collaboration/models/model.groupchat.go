// Package models - model GroupChat thuộc domain collaboration.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatParticipant là một người tham gia kênh trao đổi.
// Email trong danh sách là duy nhất (không phân biệt hoa thường).
type ChatParticipant struct {
	ParticipantRef primitive.ObjectID `json:"participantRef" bson:"participantRef"`
	RoleTag        string             `json:"roleTag" bson:"roleTag"`
	Email          string             `json:"email" bson:"email"`
	DisplayName    string             `json:"displayName" bson:"displayName"`
	Department     string             `json:"department,omitempty" bson:"department,omitempty"`
	JoinedAt       int64              `json:"joinedAt" bson:"joinedAt"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
}

// ChatMessage là một tin nhắn trong kênh (append-only, có thứ tự).
type ChatMessage struct {
	Sender     primitive.ObjectID  `json:"sender" bson:"sender"`
	SenderName string              `json:"senderName" bson:"senderName"`
	Body       string              `json:"body" bson:"body"`
	SentAt     int64               `json:"sentAt" bson:"sentAt"`
	ReplyTo    *primitive.ObjectID `json:"replyTo,omitempty" bson:"replyTo,omitempty"`
}

// GroupChat là kênh trao đổi của một submission, tạo lazy và tối đa một kênh
// cho mỗi submission. Unique index trên submissionId là chốt chặn cuối cùng:
// các request tạo đồng thời đều hội tụ về một bản ghi duy nhất.
type GroupChat struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SubmissionID primitive.ObjectID `json:"submissionId" bson:"submissionId" index:"unique"`
	Name         string             `json:"name" bson:"name"`
	Participants []ChatParticipant  `json:"participants" bson:"participants"`
	Messages     []ChatMessage      `json:"messages" bson:"messages"`
	CreatedBy    primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// GroupChatPaginateResult đại diện cho kết quả phân trang GroupChat
type GroupChatPaginateResult struct {
	Page      int64       `json:"page" bson:"page"`
	Limit     int64       `json:"limit" bson:"limit"`
	ItemCount int64       `json:"itemCount" bson:"itemCount"`
	Items     []GroupChat `json:"items" bson:"items"`
}
