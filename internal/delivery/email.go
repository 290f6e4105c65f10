package delivery

import (
	"context"
	"fmt"

	"task_flow/internal/delivery/channels"
	"task_flow/internal/global"
)

// EmailChannel render template email mời tham gia kênh trao đổi rồi gửi qua SMTP.
type EmailChannel struct {
	frontendURL string
}

// NewEmailChannel tạo EmailChannel với join link trỏ về frontend.
func NewEmailChannel() *EmailChannel {
	return &EmailChannel{
		frontendURL: global.MongoDB_ServerConfig.FrontendURL,
	}
}

// SendEmail gửi email thông báo cho một người nhận.
// Template chứa: tên người nhận, tên kênh, tiêu đề task, link tham gia, tên người gửi.
func (c *EmailChannel) SendEmail(ctx context.Context, recipient Recipient, event Event) error {
	joinLink := fmt.Sprintf("%s/collaboration/channel/%s", c.frontendURL, event.SubmissionID.Hex())

	var subject string
	switch event.Type {
	case "message_posted":
		subject = fmt.Sprintf("Tin nhắn mới trong kênh %s", event.ChannelName)
	default:
		subject = fmt.Sprintf("Bạn được thêm vào kênh trao đổi %s", event.ChannelName)
	}

	htmlBody := fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
	<p>Xin chào <strong>%s</strong>,</p>
	<p><strong>%s</strong> đã mời bạn vào kênh trao đổi <strong>%s</strong> của task <strong>%s</strong>.</p>
	<p>%s</p>
	<div style="margin-top:20px;">
		<a href="%s" style="display:inline-block;padding:10px 20px;text-decoration:none;border-radius:5px;background-color:#007bff;color:#fff;">Tham gia kênh</a>
	</div>
</div>`,
		recipient.DisplayName,
		event.ActorName,
		event.ChannelName,
		event.TaskTitle,
		event.Body,
		joinLink,
	)

	return channels.SendEmail(ctx, recipient.Email, subject, htmlBody)
}
