// Package delivery - Test dispatcher fan-out: cô lập lỗi giữa các delivery,
// settle-all và mỗi delivery chỉ thử đúng một lần.
package delivery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubNotifier đếm số lần gửi in-app theo email, có thể fail hoặc panic theo recipient.
type stubNotifier struct {
	mu       sync.Mutex
	attempts map[string]int
	failFor  string
	panicFor string
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{attempts: map[string]int{}}
}

func (s *stubNotifier) SendNotification(_ context.Context, recipient Recipient, _ Event) error {
	s.mu.Lock()
	s.attempts[recipient.Email]++
	s.mu.Unlock()
	if recipient.Email == s.panicFor {
		panic("notifier hỏng")
	}
	if recipient.Email == s.failFor {
		return errors.New("ghi notification thất bại")
	}
	return nil
}

// stubEmailer tương tự cho kênh email.
type stubEmailer struct {
	mu       sync.Mutex
	attempts map[string]int
	failFor  string
	panicFor string
}

func newStubEmailer() *stubEmailer {
	return &stubEmailer{attempts: map[string]int{}}
}

func (s *stubEmailer) SendEmail(_ context.Context, recipient Recipient, _ Event) error {
	s.mu.Lock()
	s.attempts[recipient.Email]++
	s.mu.Unlock()
	if recipient.Email == s.panicFor {
		panic("smtp hỏng")
	}
	if recipient.Email == s.failFor {
		return errors.New("smtp timeout")
	}
	return nil
}

// stubSink gom các report được lưu.
type stubSink struct {
	mu    sync.Mutex
	saved []DeliveryReport
}

func (s *stubSink) SaveReport(_ context.Context, report DeliveryReport) error {
	s.mu.Lock()
	s.saved = append(s.saved, report)
	s.mu.Unlock()
	return nil
}

func recipients(emails ...string) []Recipient {
	list := make([]Recipient, 0, len(emails))
	for _, email := range emails {
		list = append(list, Recipient{ID: primitive.NewObjectID(), Email: email, DisplayName: email})
	}
	return list
}

func testEvent() Event {
	return Event{
		Type:         "message_posted",
		SubmissionID: primitive.NewObjectID(),
		ChannelID:    primitive.NewObjectID(),
		ChannelName:  "Chiến dịch Q3",
		TaskTitle:    "Chiến dịch Q3",
		ActorName:    "Minh Tran",
		Body:         "Cập nhật tiến độ",
	}
}

func TestDispatch_TatCaThanhCong(t *testing.T) {
	notifier := newStubNotifier()
	emailer := newStubEmailer()
	sink := &stubSink{}
	d := NewDispatcherWith(notifier, emailer, sink, time.Second)

	reports := d.Dispatch(context.Background(), recipients("a@example.com", "b@example.com"), testEvent())
	if len(reports) != 2 {
		t.Fatalf("Phải có một report cho mỗi recipient, có %d", len(reports))
	}
	for _, r := range reports {
		if !r.NotificationSent || !r.EmailSent {
			t.Errorf("Recipient %s phải nhận đủ cả hai kênh: %+v", r.RecipientEmail, r)
		}
		if r.NotificationError != "" || r.EmailError != "" {
			t.Errorf("Không được có lỗi khi cả hai kênh thành công: %+v", r)
		}
	}
	if len(sink.saved) != 2 {
		t.Errorf("Sink phải nhận đủ report, có %d", len(sink.saved))
	}
}

func TestDispatch_LoiMotRecipientKhongLanSangRecipientKhac(t *testing.T) {
	notifier := newStubNotifier()
	notifier.failFor = "b@example.com"
	emailer := newStubEmailer()
	emailer.panicFor = "b@example.com"
	d := NewDispatcherWith(notifier, emailer, &stubSink{}, time.Second)

	reports := d.Dispatch(context.Background(), recipients("a@example.com", "b@example.com", "c@example.com"), testEvent())

	byEmail := map[string]DeliveryReport{}
	for _, r := range reports {
		byEmail[r.RecipientEmail] = r
	}

	for _, email := range []string{"a@example.com", "c@example.com"} {
		r := byEmail[email]
		if !r.NotificationSent || !r.EmailSent {
			t.Errorf("Recipient %s không được ảnh hưởng bởi lỗi của recipient khác: %+v", email, r)
		}
	}

	failed := byEmail["b@example.com"]
	if failed.NotificationSent || failed.NotificationError == "" {
		t.Errorf("Kênh in-app của b@example.com phải fail kèm lỗi: %+v", failed)
	}
	if failed.EmailSent || failed.EmailError == "" {
		t.Errorf("Panic trong kênh email phải được recover thành lỗi: %+v", failed)
	}
}

func TestDispatch_HaiKenhDocLapTrenCungRecipient(t *testing.T) {
	notifier := newStubNotifier()
	notifier.failFor = "a@example.com"
	emailer := newStubEmailer()
	d := NewDispatcherWith(notifier, emailer, &stubSink{}, time.Second)

	reports := d.Dispatch(context.Background(), recipients("a@example.com"), testEvent())
	r := reports[0]
	if r.NotificationSent {
		t.Error("Kênh in-app phải fail")
	}
	if !r.EmailSent {
		t.Error("Kênh email phải thành công dù in-app fail (hai delivery độc lập)")
	}
}

func TestDispatch_MoiDeliveryChiThuDungMotLan(t *testing.T) {
	notifier := newStubNotifier()
	notifier.failFor = "a@example.com"
	emailer := newStubEmailer()
	emailer.failFor = "a@example.com"
	d := NewDispatcherWith(notifier, emailer, &stubSink{}, time.Second)

	d.Dispatch(context.Background(), recipients("a@example.com"), testEvent())

	if notifier.attempts["a@example.com"] != 1 {
		t.Errorf("In-app phải thử đúng một lần kể cả khi fail, có %d lần", notifier.attempts["a@example.com"])
	}
	if emailer.attempts["a@example.com"] != 1 {
		t.Errorf("Email phải thử đúng một lần kể cả khi fail, có %d lần", emailer.attempts["a@example.com"])
	}
}

func TestDispatch_KhongCoRecipient(t *testing.T) {
	d := NewDispatcherWith(newStubNotifier(), newStubEmailer(), &stubSink{}, time.Second)
	reports := d.Dispatch(context.Background(), nil, testEvent())
	if len(reports) != 0 {
		t.Errorf("Không có recipient thì không có report, có %d", len(reports))
	}
}
