// Package handler - Test endpoint GET kênh: access check phải chạy trước
// lookup kênh, actor không có quyền không được biết kênh tồn tại hay chưa.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "task_flow/internal/api/auth/models"
	basehdl "task_flow/internal/api/base/handler"
	"task_flow/internal/api/collaboration/dto"
	models "task_flow/internal/api/collaboration/models"
	submissionmodels "task_flow/internal/api/submission/models"
	"task_flow/internal/common"
)

// stubChannelService thay GroupChatService, đếm số lần handler lookup kênh.
type stubChannelService struct {
	submission      submissionmodels.Submission
	submissionErr   error
	chat            models.GroupChat
	chatErr         error
	getChannelCalls int
}

func (s *stubChannelService) FindSubmission(_ context.Context, _ primitive.ObjectID) (submissionmodels.Submission, error) {
	return s.submission, s.submissionErr
}

func (s *stubChannelService) GetChannel(_ context.Context, _ primitive.ObjectID) (models.GroupChat, error) {
	s.getChannelCalls++
	return s.chat, s.chatErr
}

func (s *stubChannelService) GetOrCreateChannel(_ context.Context, _ *submissionmodels.Submission, _ *authmodels.Identity) (models.GroupChat, bool, error) {
	return s.chat, false, s.chatErr
}

func (s *stubChannelService) PostMessage(_ context.Context, _ primitive.ObjectID, _ *authmodels.Identity, _ string, _ *primitive.ObjectID) (models.GroupChat, error) {
	return s.chat, s.chatErr
}

func (s *stubChannelService) FanOutChannelCreated(_ context.Context, _ *models.GroupChat, _ *submissionmodels.Submission, _ *authmodels.Identity) {
}

type stubResolver struct {
	identity *authmodels.Identity
}

func (r *stubResolver) ResolveIdentity(_ context.Context, _ string) (*authmodels.Identity, error) {
	if r.identity == nil {
		return nil, common.ErrNotFound
	}
	return r.identity, nil
}

// channelWire là shape JSON mà frontend parse từ các endpoint kênh.
type channelWire struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func newChannelTestApp(svc *stubChannelService, actor *authmodels.Identity) *fiber.App {
	h := &CollaborationHandler{
		BaseHandler:      basehdl.NewBaseHandler[models.GroupChat, dto.ChannelCreateInput, dto.MessageCreateInput](nil),
		groupChatService: svc,
		directory:        &stubResolver{identity: actor},
	}

	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		c.Locals("user_email", actor.Email)
		return c.Next()
	})
	app.Get("/collaboration/channel", h.HandleGetChannel)
	return app
}

func decodeChannelWire(t *testing.T, body io.Reader) channelWire {
	t.Helper()
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("Không đọc được response body: %v", err)
	}
	var wire channelWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("Response không phải JSON hợp lệ: %v (%s)", err, raw)
	}
	return wire
}

func TestHandleGetChannel_KhongCoQuyenTraVe403TruocKhiLookupKenh(t *testing.T) {
	owner := primitive.NewObjectID()
	svc := &stubChannelService{
		submission: submissionmodels.Submission{ID: primitive.NewObjectID(), Owner: owner},
		chatErr:    common.ErrNotFound, // kênh chưa tồn tại
	}
	// Employee không nằm trong bất kỳ danh sách nào của submission
	actor := &authmodels.Identity{ID: primitive.NewObjectID(), Role: authmodels.RoleEmployee, Email: "emp@example.com"}
	app := newChannelTestApp(svc, actor)

	req := httptest.NewRequest("GET", "/collaboration/channel?submissionId="+svc.submission.ID.Hex(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test trả về lỗi: %v", err)
	}

	if resp.StatusCode != common.StatusForbidden {
		t.Errorf("Actor không có quyền phải nhận 403 kể cả khi kênh chưa tồn tại, có %d", resp.StatusCode)
	}
	wire := decodeChannelWire(t, resp.Body)
	if wire.Error != "Access denied" {
		t.Errorf("Body phải là {\"error\":\"Access denied\"}, có error = %q", wire.Error)
	}
	if svc.getChannelCalls != 0 {
		t.Errorf("Không được lookup kênh trước khi access check pass, có %d lần lookup", svc.getChannelCalls)
	}
}

func TestHandleGetChannel_CoQuyenNhungChuaCoKenhTraVe404(t *testing.T) {
	svc := &stubChannelService{
		submission: submissionmodels.Submission{ID: primitive.NewObjectID(), Owner: primitive.NewObjectID()},
		chatErr:    common.ErrNotFound,
	}
	actor := &authmodels.Identity{ID: primitive.NewObjectID(), Role: authmodels.RoleAdmin, Email: "admin@example.com"}
	app := newChannelTestApp(svc, actor)

	req := httptest.NewRequest("GET", "/collaboration/channel?submissionId="+svc.submission.ID.Hex(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test trả về lỗi: %v", err)
	}

	if resp.StatusCode != common.StatusNotFound {
		t.Errorf("Actor có quyền nhưng kênh chưa tồn tại phải nhận 404, có %d", resp.StatusCode)
	}
	wire := decodeChannelWire(t, resp.Body)
	if wire.Error != "Group chat not found" {
		t.Errorf("Body phải là {\"error\":\"Group chat not found\"}, có error = %q", wire.Error)
	}
	if svc.getChannelCalls != 1 {
		t.Errorf("GET không được tạo kênh, chỉ lookup đúng một lần, có %d", svc.getChannelCalls)
	}
}

func TestHandleGetChannel_CoQuyenVaCoKenhTraVe200(t *testing.T) {
	submissionID := primitive.NewObjectID()
	svc := &stubChannelService{
		submission: submissionmodels.Submission{ID: submissionID, Owner: primitive.NewObjectID()},
		chat:       models.GroupChat{ID: primitive.NewObjectID(), SubmissionID: submissionID},
	}
	actor := &authmodels.Identity{ID: primitive.NewObjectID(), Role: authmodels.RoleAdmin, Email: "admin@example.com"}
	app := newChannelTestApp(svc, actor)

	req := httptest.NewRequest("GET", "/collaboration/channel?submissionId="+submissionID.Hex(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test trả về lỗi: %v", err)
	}

	if resp.StatusCode != common.StatusOK {
		t.Errorf("Actor có quyền và kênh tồn tại phải nhận 200, có %d", resp.StatusCode)
	}
	wire := decodeChannelWire(t, resp.Body)
	if !wire.Success {
		t.Error("Body phải có success = true")
	}
}

func TestHandleGetChannel_ThieuSubmissionIdTraVe400(t *testing.T) {
	svc := &stubChannelService{}
	actor := &authmodels.Identity{ID: primitive.NewObjectID(), Role: authmodels.RoleAdmin, Email: "admin@example.com"}
	app := newChannelTestApp(svc, actor)

	req := httptest.NewRequest("GET", "/collaboration/channel", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test trả về lỗi: %v", err)
	}

	if resp.StatusCode != common.StatusBadRequest {
		t.Errorf("Thiếu submissionId phải nhận 400, có %d", resp.StatusCode)
	}
}
