package basehdl

import (
	"fmt"
	"reflect"
	"strings"
	"task_flow/internal/common"
	"task_flow/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// buildSetUpdate chuyển model thành update document dạng {$set: {...}},
// chỉ lấy các field khác zero value để tránh ghi đè dữ liệu hiện có bằng giá trị rỗng.
func buildSetUpdate(model interface{}) (bson.M, error) {
	dataMap, err := utility.ToMap(model)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không thể chuyển đổi dữ liệu cập nhật", common.StatusBadRequest, err)
	}

	val := reflect.ValueOf(model)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()

	setFields := bson.M{}
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		bsonTag := fieldType.Tag.Get("bson")
		if bsonTag == "" || bsonTag == "-" {
			continue
		}
		bsonKey := strings.Split(bsonTag, ",")[0]
		if bsonKey == "" || bsonKey == "_id" || bsonKey == "createdAt" || bsonKey == "updatedAt" {
			continue
		}

		if field.IsZero() {
			continue
		}
		if value, ok := dataMap[bsonKey]; ok {
			setFields[bsonKey] = value
		}
	}

	if len(setFields) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không có dữ liệu để cập nhật", common.StatusBadRequest, nil)
	}

	return bson.M{"$set": setFields}, nil
}

// parseObjectID validate và chuyển string id từ URI param thành ObjectID
func parseObjectID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput, "ID không được để trống", common.StatusBadRequest, nil)
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("ID '%s' không hợp lệ", id), common.StatusBadRequest, err)
	}
	return objID, nil
}

// HandleInsertOne xử lý request tạo mới một document.
// Body: CreateInput (DTO) - được transform sang Model qua struct tag `transform`.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleInsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(CreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformCreateInputToModel(input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.InsertOne(c.Context(), *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleInsertMany xử lý request tạo mới nhiều document cùng lúc.
// Body: mảng CreateInput.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleInsertMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var inputs []CreateInput
		if err := h.ParseRequestBody(c, &inputs); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if len(inputs) == 0 {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Danh sách dữ liệu không được để trống", common.StatusBadRequest, nil))
			return nil
		}

		models := make([]T, 0, len(inputs))
		for i := range inputs {
			model, err := h.TransformCreateInputToModel(&inputs[i])
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			models = append(models, *model)
		}

		data, err := h.BaseService.InsertMany(c.Context(), models)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFindOne xử lý request tìm một document theo filter từ query string.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFindOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		rawOpts, err := h.processMongoOptions(c, true)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		opts, _ := rawOpts.(*mongoopts.FindOneOptions)

		data, err := h.BaseService.FindOne(c.Context(), filter, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFindOneById xử lý request tìm một document theo ID từ URI param.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOneById(c.Context(), id)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFindManyByIds xử lý request tìm nhiều document theo danh sách ID.
// Body: {"ids": ["...", "..."]}
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFindManyByIds(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input struct {
			IDs []string `json:"ids" validate:"required,min=1"`
		}
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ids := make([]primitive.ObjectID, 0, len(input.IDs))
		for _, idStr := range input.IDs {
			id, err := parseObjectID(idStr)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			ids = append(ids, id)
		}

		data, err := h.BaseService.FindManyByIds(c.Context(), ids)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFindWithPagination xử lý request tìm document có phân trang.
// Query: filter (JSON), options (JSON), page, limit.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		rawOpts, err := h.processMongoOptions(c, false)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		opts, _ := rawOpts.(*mongoopts.FindOptions)

		page, limit := h.ParsePagination(c)

		data, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFind xử lý request tìm nhiều document theo filter từ query string.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFind(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		rawOpts, err := h.processMongoOptions(c, false)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		opts, _ := rawOpts.(*mongoopts.FindOptions)

		data, err := h.BaseService.Find(c.Context(), filter, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpdateOne xử lý request cập nhật một document theo filter.
// Body: UpdateInput (DTO) - chỉ các field khác zero được đưa vào $set.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleUpdateOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(UpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformUpdateInputToModel(input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		update, err := buildSetUpdate(model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.UpdateOne(c.Context(), filter, update, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpdateMany xử lý request cập nhật nhiều document theo filter.
// Trả về số lượng document đã được cập nhật.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleUpdateMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(UpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformUpdateInputToModel(input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		update, err := buildSetUpdate(model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.BaseService.UpdateMany(c.Context(), filter, update, nil)
		h.HandleResponse(c, fiber.Map{"modifiedCount": count}, err)
		return nil
	})
}

// HandleUpdateById xử lý request cập nhật một document theo ID từ URI param.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleUpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(UpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformUpdateInputToModel(input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		update, err := buildSetUpdate(model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.UpdateById(c.Context(), id, update)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleDeleteOne xử lý request xóa một document theo filter.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleDeleteOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if len(filter) == 0 {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Filter không được để trống khi xóa dữ liệu", common.StatusBadRequest, nil))
			return nil
		}

		err = h.BaseService.DeleteOne(c.Context(), filter)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleDeleteMany xử lý request xóa nhiều document theo filter.
// Trả về số lượng document đã xóa.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleDeleteMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if len(filter) == 0 {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Filter không được để trống khi xóa dữ liệu", common.StatusBadRequest, nil))
			return nil
		}

		count, err := h.BaseService.DeleteMany(c.Context(), filter)
		h.HandleResponse(c, fiber.Map{"deletedCount": count}, err)
		return nil
	})
}

// HandleDeleteById xử lý request xóa một document theo ID từ URI param.
// Các quan hệ được khai báo qua struct tag `relationship` sẽ được kiểm tra trước khi xóa.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleDeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := parseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.BaseService.DeleteById(c.Context(), id)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleFindOneAndUpdate xử lý request tìm và cập nhật một document (atomic).
// Trả về document sau khi cập nhật.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFindOneAndUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(UpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformUpdateInputToModel(input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		update, err := buildSetUpdate(model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opts := mongoopts.FindOneAndUpdate().SetReturnDocument(mongoopts.After)
		data, err := h.BaseService.FindOneAndUpdate(c.Context(), filter, update, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleCountDocuments xử lý request đếm số lượng document theo filter.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleCountDocuments(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.BaseService.CountDocuments(c.Context(), filter)
		h.HandleResponse(c, fiber.Map{"count": count}, err)
		return nil
	})
}

// HandleDistinct xử lý request lấy danh sách giá trị duy nhất của một field.
// Query: field (tên field), filter (JSON).
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleDistinct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		fieldName := c.Query("field", "")
		if fieldName == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Tham số 'field' không được để trống", common.StatusBadRequest, nil))
			return nil
		}
		if utility.Contains(h.filterOptions.DeniedFields, fieldName) {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Trường '%s' không được phép truy vấn vì lý do bảo mật", fieldName), common.StatusBadRequest, nil))
			return nil
		}

		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.Distinct(c.Context(), fieldName, filter)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpsert xử lý request upsert một document theo filter.
// Body: CreateInput - nếu document chưa tồn tại sẽ được tạo mới.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleUpsert(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if len(filter) == 0 {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Filter không được để trống khi upsert", common.StatusBadRequest, nil))
			return nil
		}

		input := new(CreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformCreateInputToModel(input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.Upsert(c.Context(), filter, *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleDocumentExists xử lý request kiểm tra document có tồn tại theo filter không.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleDocumentExists(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		exists, err := h.BaseService.DocumentExists(c.Context(), filter)
		h.HandleResponse(c, fiber.Map{"exists": exists}, err)
		return nil
	})
}
