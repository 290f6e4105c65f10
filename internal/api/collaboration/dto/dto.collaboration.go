// Package dto - input cho các endpoint kênh trao đổi.
package dto

// ChannelCreateInput là input tạo (hoặc lấy) kênh trao đổi của một submission.
type ChannelCreateInput struct {
	SubmissionId string `json:"submissionId" validate:"required"`
}

// MessageCreateInput là input đăng tin nhắn vào kênh.
type MessageCreateInput struct {
	SubmissionId string `json:"submissionId" validate:"required"`
	Body         string `json:"body" validate:"required"`
	ReplyTo      string `json:"replyTo,omitempty" validate:"omitempty"`
}
