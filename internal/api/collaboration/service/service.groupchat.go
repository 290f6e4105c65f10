package collaborationsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "task_flow/internal/api/auth/models"
	authsvc "task_flow/internal/api/auth/service"
	basesvc "task_flow/internal/api/base/service"
	models "task_flow/internal/api/collaboration/models"
	notifmodels "task_flow/internal/api/notification/models"
	submissionmodels "task_flow/internal/api/submission/models"
	"task_flow/internal/common"
	"task_flow/internal/delivery"
	"task_flow/internal/global"
	"task_flow/internal/utility"
)

// GroupChatService quản lý kênh trao đổi: tạo lazy đúng một lần cho mỗi submission,
// đọc kênh, đăng tin nhắn và fan-out thông báo cho người tham gia.
// Các phụ thuộc là interface để test chạy được với store/roster giả.
type GroupChatService struct {
	basesvc.BaseServiceMongo[models.GroupChat]
	submissionService basesvc.BaseServiceMongo[submissionmodels.Submission]
	directory         RosterReader
	dispatcher        *delivery.Dispatcher
}

// NewGroupChatService tạo mới GroupChatService
func NewGroupChatService() (*GroupChatService, error) {
	chatCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.GroupChats)
	if !exist {
		return nil, fmt.Errorf("failed to get group_chats collection: %v", common.ErrNotFound)
	}
	submissionCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Submissions)
	if !exist {
		return nil, fmt.Errorf("failed to get submissions collection: %v", common.ErrNotFound)
	}
	directory, err := authsvc.GetDirectoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create directory service: %v", err)
	}
	dispatcher, err := delivery.NewDispatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery dispatcher: %v", err)
	}
	return &GroupChatService{
		BaseServiceMongo:  basesvc.NewBaseServiceMongo[models.GroupChat](chatCollection),
		submissionService: basesvc.NewBaseServiceMongo[submissionmodels.Submission](submissionCollection),
		directory:         directory,
		dispatcher:        dispatcher,
	}, nil
}

// FindSubmission đọc submission của kênh (dùng cho access check ở handler).
func (s *GroupChatService) FindSubmission(ctx context.Context, submissionID primitive.ObjectID) (submissionmodels.Submission, error) {
	return s.submissionService.FindOneById(ctx, submissionID)
}

// GetChannel đọc kênh theo submissionId. Không bao giờ tạo mới.
func (s *GroupChatService) GetChannel(ctx context.Context, submissionID primitive.ObjectID) (models.GroupChat, error) {
	return s.FindOne(ctx, bson.M{"submissionId": submissionID}, nil)
}

// GetOrCreateChannel trả về kênh của submission, tạo lazy nếu chưa có.
// Kênh đã tồn tại được trả về nguyên trạng (không refresh participant).
// Trả về cờ created = true khi chính request này tạo ra kênh.
//
// Race tạo đồng thời hội tụ nhờ unique index trên submissionId: bên thua
// nhận duplicate-key, đọc lại bản ghi thắng và trả về như kênh đã tồn tại —
// lỗi race không bao giờ nổi lên caller.
func (s *GroupChatService) GetOrCreateChannel(ctx context.Context, submission *submissionmodels.Submission, actor *authmodels.Identity) (models.GroupChat, bool, error) {
	var zero models.GroupChat

	filter := bson.M{"submissionId": submission.ID}
	existing, err := s.FindOne(ctx, filter, nil)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, false, err
	}

	// excludeEmail rỗng: người tạo cũng là participant
	participants, err := ResolveParticipants(ctx, s.directory, submission, actor, "")
	if err != nil {
		return zero, false, err
	}

	now := utility.CurrentTimeInMilli()
	chatParticipants := make([]models.ChatParticipant, 0, len(participants))
	for _, p := range participants {
		chatParticipants = append(chatParticipants, models.ChatParticipant{
			ParticipantRef: p.ID,
			RoleTag:        p.RoleTag,
			Email:          p.Email,
			DisplayName:    p.DisplayName,
			Department:     p.Department,
			JoinedAt:       now,
			IsActive:       true,
		})
	}

	chat := models.GroupChat{
		SubmissionID: submission.ID,
		Name:         submission.Title,
		Participants: chatParticipants,
		Messages:     []models.ChatMessage{},
		CreatedBy:    actor.ID,
	}

	created, err := s.InsertOne(ctx, chat)
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) || errors.Is(err, common.ErrDuplicate) {
			winner, rerr := s.FindOne(ctx, filter, nil)
			if rerr != nil {
				return zero, false, rerr
			}
			return winner, false, nil
		}
		return zero, false, err
	}
	return created, true, nil
}

// FanOutChannelCreated gửi thông báo (in-app + email) cho mọi participant trừ actor.
// Kết quả settle-all được dispatcher log và lưu report; lỗi gửi không nổi lên caller.
func (s *GroupChatService) FanOutChannelCreated(ctx context.Context, chat *models.GroupChat, submission *submissionmodels.Submission, actor *authmodels.Identity) {
	event := delivery.Event{
		Type:         notifmodels.TypeChannelCreated,
		SubmissionID: submission.ID,
		ChannelID:    chat.ID,
		ChannelName:  chat.Name,
		TaskTitle:    submission.Title,
		ActorName:    actor.DisplayName(),
		Body:         fmt.Sprintf("%s đã tạo kênh trao đổi cho task %s", actor.DisplayName(), submission.Title),
	}
	s.dispatcher.Dispatch(ctx, s.recipientsExcept(chat, actor), event)
}

// PostMessage đăng một tin nhắn vào kênh của submission rồi fan-out cho
// mọi participant trừ người gửi. Kênh phải tồn tại sẵn.
func (s *GroupChatService) PostMessage(ctx context.Context, submissionID primitive.ObjectID, actor *authmodels.Identity, body string, replyTo *primitive.ObjectID) (models.GroupChat, error) {
	var zero models.GroupChat

	message := models.ChatMessage{
		Sender:     actor.ID,
		SenderName: actor.DisplayName(),
		Body:       body,
		SentAt:     utility.CurrentTimeInMilli(),
		ReplyTo:    replyTo,
	}
	updateData := &basesvc.UpdateData{
		Push: map[string]interface{}{
			"messages": message,
		},
	}
	updated, err := s.UpdateOne(ctx, bson.M{"submissionId": submissionID}, updateData, nil)
	if err != nil {
		return zero, err
	}

	event := delivery.Event{
		Type:         notifmodels.TypeMessagePosted,
		SubmissionID: submissionID,
		ChannelID:    updated.ID,
		ChannelName:  updated.Name,
		TaskTitle:    updated.Name,
		ActorName:    actor.DisplayName(),
		Body:         body,
	}
	s.dispatcher.Dispatch(ctx, s.recipientsExcept(&updated, actor), event)

	return updated, nil
}

// recipientsExcept dựng danh sách người nhận fan-out: mọi participant đang active,
// trừ chính actor (so sánh email chuẩn hóa).
func (s *GroupChatService) recipientsExcept(chat *models.GroupChat, actor *authmodels.Identity) []delivery.Recipient {
	actorEmail := authsvc.NormalizeEmail(actor.Email)
	recipients := make([]delivery.Recipient, 0, len(chat.Participants))
	for _, p := range chat.Participants {
		if authsvc.NormalizeEmail(p.Email) == actorEmail {
			continue
		}
		if !p.IsActive {
			continue
		}
		recipients = append(recipients, delivery.Recipient{
			ID:          p.ParticipantRef,
			RoleTag:     p.RoleTag,
			Email:       p.Email,
			DisplayName: p.DisplayName,
		})
	}
	return recipients
}
