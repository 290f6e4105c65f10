// Package collaborationsvc - Test GetOrCreateChannel: tạo đúng một lần cho mỗi
// submission, gọi lại trả về kênh cũ nguyên trạng, bên thua race duplicate-key
// đọc lại bản thắng.
package collaborationsvc

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "task_flow/internal/api/base/models"
	models "task_flow/internal/api/collaboration/models"
	submissionmodels "task_flow/internal/api/submission/models"
	"task_flow/internal/common"
)

// stubStore là store giả giữ tối đa một bản ghi trong bộ nhớ, đủ cho chuỗi
// find / insert / duplicate-re-read của GetOrCreateChannel.
type stubStore[T any] struct {
	stored      *T
	insertFn    func(T) (T, error)
	findCalls   int
	insertCalls int
}

func (s *stubStore[T]) zero() T {
	var z T
	return z
}

func (s *stubStore[T]) FindOne(_ context.Context, _ interface{}, _ *options.FindOneOptions) (T, error) {
	s.findCalls++
	if s.stored != nil {
		return *s.stored, nil
	}
	return s.zero(), common.ErrNotFound
}

func (s *stubStore[T]) InsertOne(_ context.Context, data T) (T, error) {
	s.insertCalls++
	if s.insertFn != nil {
		return s.insertFn(data)
	}
	s.stored = &data
	return data, nil
}

func (s *stubStore[T]) FindOneById(_ context.Context, _ primitive.ObjectID) (T, error) {
	if s.stored != nil {
		return *s.stored, nil
	}
	return s.zero(), common.ErrNotFound
}

// Phần còn lại của interface không tham gia các test này.
func (s *stubStore[T]) InsertMany(_ context.Context, _ []T) ([]T, error) { return nil, nil }
func (s *stubStore[T]) Find(_ context.Context, _ interface{}, _ *options.FindOptions) ([]T, error) {
	return nil, nil
}
func (s *stubStore[T]) UpdateOne(_ context.Context, _ interface{}, _ interface{}, _ *options.UpdateOptions) (T, error) {
	return s.zero(), common.ErrNotFound
}
func (s *stubStore[T]) UpdateMany(_ context.Context, _ interface{}, _ interface{}, _ *options.UpdateOptions) (int64, error) {
	return 0, nil
}
func (s *stubStore[T]) DeleteOne(_ context.Context, _ interface{}) error { return nil }
func (s *stubStore[T]) DeleteMany(_ context.Context, _ interface{}) (int64, error) {
	return 0, nil
}
func (s *stubStore[T]) FindOneAndUpdate(_ context.Context, _ interface{}, _ interface{}, _ *options.FindOneAndUpdateOptions) (T, error) {
	return s.zero(), common.ErrNotFound
}
func (s *stubStore[T]) CountDocuments(_ context.Context, _ interface{}) (int64, error) {
	return 0, nil
}
func (s *stubStore[T]) Distinct(_ context.Context, _ string, _ interface{}) ([]interface{}, error) {
	return nil, nil
}
func (s *stubStore[T]) FindManyByIds(_ context.Context, _ []primitive.ObjectID) ([]T, error) {
	return nil, nil
}
func (s *stubStore[T]) FindWithPagination(_ context.Context, _ interface{}, _ int64, _ int64, _ *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	return nil, common.ErrNotFound
}
func (s *stubStore[T]) UpdateById(_ context.Context, _ primitive.ObjectID, _ interface{}) (T, error) {
	return s.zero(), common.ErrNotFound
}
func (s *stubStore[T]) DeleteById(_ context.Context, _ primitive.ObjectID) error { return nil }
func (s *stubStore[T]) Upsert(_ context.Context, _ interface{}, _ interface{}) (T, error) {
	return s.zero(), common.ErrNotFound
}
func (s *stubStore[T]) DocumentExists(_ context.Context, _ interface{}) (bool, error) {
	return s.stored != nil, nil
}

func newChatServiceFixture() (*GroupChatService, *stubStore[models.GroupChat], *rosterFixture) {
	f := buildRosterFixture()
	store := &stubStore[models.GroupChat]{}
	svc := &GroupChatService{
		BaseServiceMongo:  store,
		submissionService: &stubStore[submissionmodels.Submission]{stored: f.submission},
		directory:         f.roster,
	}
	return svc, store, f
}

func TestGetOrCreateChannel_LanHaiTraVeKenhCuKhongTaoLai(t *testing.T) {
	svc, store, f := newChatServiceFixture()
	ctx := context.Background()

	first, created, err := svc.GetOrCreateChannel(ctx, f.submission, f.actor)
	if err != nil {
		t.Fatalf("Lần gọi đầu trả về lỗi: %v", err)
	}
	if !created {
		t.Fatal("Lần gọi đầu phải tạo kênh (created = true)")
	}
	// owner (= actor), shared manager, team lead, employee, admin
	if len(first.Participants) != 5 {
		t.Fatalf("Kênh mới phải có đủ participant, muốn 5, có %d", len(first.Participants))
	}

	second, created, err := svc.GetOrCreateChannel(ctx, f.submission, f.actor)
	if err != nil {
		t.Fatalf("Lần gọi hai trả về lỗi: %v", err)
	}
	if created {
		t.Error("Lần gọi hai phải trả về kênh cũ (created = false)")
	}
	if second.SubmissionID != first.SubmissionID {
		t.Error("Hai lần gọi phải trả về kênh của cùng submission")
	}
	if len(second.Participants) != len(first.Participants) {
		t.Errorf("Participant phải giữ nguyên giữa hai lần gọi, có %d so với %d",
			len(second.Participants), len(first.Participants))
	}
	if store.insertCalls != 1 {
		t.Errorf("Chỉ được insert đúng một lần cho mỗi submission, có %d", store.insertCalls)
	}
}

func TestGetOrCreateChannel_KenhDaTonTaiKhongRefreshParticipant(t *testing.T) {
	svc, store, f := newChatServiceFixture()

	// Kênh có sẵn với một participant duy nhất; roster hiện tại có 5 người
	existing := models.GroupChat{
		ID:           primitive.NewObjectID(),
		SubmissionID: f.submission.ID,
		Participants: []models.ChatParticipant{{Email: f.owner.Email, IsActive: true}},
	}
	store.stored = &existing

	chat, created, err := svc.GetOrCreateChannel(context.Background(), f.submission, f.actor)
	if err != nil {
		t.Fatalf("GetOrCreateChannel trả về lỗi: %v", err)
	}
	if created {
		t.Error("Kênh đã tồn tại thì created phải là false")
	}
	if store.insertCalls != 0 {
		t.Errorf("Kênh đã tồn tại thì không được insert, có %d lần", store.insertCalls)
	}
	if len(chat.Participants) != 1 {
		t.Errorf("Kênh có sẵn phải được trả về nguyên trạng, không refresh participant, có %d participant", len(chat.Participants))
	}
}

func TestGetOrCreateChannel_ThuaRaceDuplicateDocLaiBanThang(t *testing.T) {
	svc, store, f := newChatServiceFixture()

	winner := models.GroupChat{
		ID:           primitive.NewObjectID(),
		SubmissionID: f.submission.ID,
		Name:         f.submission.Title,
	}
	// Insert thua race: unique index trên submissionId trả duplicate-key,
	// đồng thời bản thắng đã nằm trong store
	store.insertFn = func(_ models.GroupChat) (models.GroupChat, error) {
		store.stored = &winner
		return models.GroupChat{}, common.ErrMongoDuplicate
	}

	chat, created, err := svc.GetOrCreateChannel(context.Background(), f.submission, f.actor)
	if err != nil {
		t.Fatalf("Duplicate-key khi thua race không được nổi lên caller: %v", err)
	}
	if created {
		t.Error("Bên thua race phải trả về created = false")
	}
	if chat.ID != winner.ID {
		t.Error("Bên thua race phải đọc lại và trả về bản ghi thắng")
	}
}
