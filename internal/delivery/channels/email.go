// Package channels - các kênh gửi vật lý (SMTP).
package channels

import (
	"context"

	"gopkg.in/gomail.v2"

	"task_flow/internal/global"
)

// SendEmail gửi một email HTML qua SMTP.
// Hợp đồng gửi tối giản: chỉ cần địa chỉ nhận, tiêu đề và thân HTML.
// gomail không nhận context nên DialAndSend chạy trong goroutine riêng,
// ctx hết hạn thì trả lỗi ngay (connection tự chết theo timeout của SMTP).
func SendEmail(ctx context.Context, toEmail string, subject string, htmlBody string) error {
	cfg := global.MongoDB_ServerConfig

	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUsername
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
