package basesvc

import (
	"context"
	"fmt"
	"task_flow/internal/common"
	"task_flow/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RelationshipCheck dinh nghia mot quan he can kiem tra
type RelationshipCheck struct {
	CollectionName string
	FieldName      string
	ErrorMessage   string
	Optional       bool
}

// CheckRelationshipExists kiem tra co record nao trong collection khac dang tro toi record nay khong
func CheckRelationshipExists(ctx context.Context, recordID primitive.ObjectID, checks []RelationshipCheck) error {
	for _, check := range checks {
		collection, exists := global.RegistryCollections.Get(check.CollectionName)
		if !exists {
			if check.Optional {
				continue
			}
			return common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Khong tim thay collection '%s' de kiem tra quan he", check.CollectionName),
				common.StatusInternalServerError,
				nil,
			)
		}
		filter := bson.M{check.FieldName: recordID}
		count, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count > 0 {
			errorMsg := check.ErrorMessage
			if errorMsg == "" {
				errorMsg = fmt.Sprintf("Khong the xoa record vi co %d record trong collection '%s' dang tham chieu toi record nay", count, check.CollectionName)
			} else {
				errorMsg = fmt.Sprintf(check.ErrorMessage, count)
			}
			return common.NewError(common.ErrCodeBusinessOperation, errorMsg, common.StatusConflict, nil)
		}
	}
	return nil
}

// GetRelationshipCount tra ve so luong record dang tham chieu toi record nay
func GetRelationshipCount(ctx context.Context, recordID primitive.ObjectID, collectionName, fieldName string) (int64, error) {
	collection, exists := global.RegistryCollections.Get(collectionName)
	if !exists {
		return 0, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("Khong tim thay collection '%s'", collectionName), common.StatusInternalServerError, nil)
	}
	filter := bson.M{fieldName: recordID}
	return collection.CountDocuments(ctx, filter)
}

// ValidateBeforeDeleteSubmission kiem tra cac quan he cua Submission truoc khi xoa
func ValidateBeforeDeleteSubmission(ctx context.Context, submissionID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.MongoDB_ColNames.Subtasks, FieldName: "submissionId", ErrorMessage: "Khong the xoa submission vi co %d subtask truc thuoc. Vui long xoa cac subtask truoc."},
		{CollectionName: global.MongoDB_ColNames.GroupChats, FieldName: "submissionId", ErrorMessage: "Khong the xoa submission vi co %d group chat truc thuoc.", Optional: true},
	}
	return CheckRelationshipExists(ctx, submissionID, checks)
}

// ValidateBeforeDeleteManager kiem tra cac quan he cua Manager truoc khi xoa
func ValidateBeforeDeleteManager(ctx context.Context, managerID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.MongoDB_ColNames.Submissions, FieldName: "owner", ErrorMessage: "Khong the xoa manager vi dang so huu %d submission. Vui long chuyen quyen so huu truoc."},
	}
	return CheckRelationshipExists(ctx, managerID, checks)
}
