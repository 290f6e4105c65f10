package utility

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// transformTagConfig chua cau hinh duoc parse tu tag transform
type transformTagConfig struct {
	Type     string // Loai transform: str_objectid, str_objectid_ptr, str_time, str_int64, str_bool
	Format   string // Format cho time converter
	Default  string // Gia tri mac dinh
	Optional bool   // Neu khong co gia tri thi bo qua
	Required bool   // Bat buoc phai co gia tri
	MapTo    string // Map sang field khac trong Model (vi du: map=EmployeeRef)
}

// ParseTransformTag parse tag transform thanh config.
// Format: "[type][,format=<value>][,default=<value>][,map=<field>][,optional|required]"
// Vi du:
//   - transform:"str_objectid"              - string → primitive.ObjectID
//   - transform:"str_objectid_ptr"          - string → *primitive.ObjectID
//   - transform:"str_time,format=2006-01-02" - string → int64 timestamp
//   - transform:"str_objectid,map=EmployeeRef,optional"
func ParseTransformTag(tag string) (*transformTagConfig, error) {
	config := &transformTagConfig{
		Format: "2006-01-02T15:04:05",
	}
	if tag == "" {
		return config, nil
	}

	parts := strings.Split(tag, ",")
	config.Type = strings.TrimSpace(parts[0])

	for i := 1; i < len(parts); i++ {
		part := strings.TrimSpace(parts[i])
		switch {
		case part == "":
			continue
		case part == "optional":
			config.Optional = true
		case part == "required":
			config.Required = true
		case strings.Contains(part, "="):
			kv := strings.SplitN(part, "=", 2)
			key := strings.TrimSpace(kv[0])
			value := strings.TrimSpace(kv[1])
			switch key {
			case "format":
				config.Format = value
			case "default":
				config.Default = value
			case "map":
				config.MapTo = value
			}
		}
	}
	return config, nil
}

// TransformFieldValue transform gia tri tu DTO field sang Model field theo config.
func TransformFieldValue(value interface{}, config *transformTagConfig, targetFieldType reflect.Type) (interface{}, error) {
	if value == nil {
		if config.Default != "" {
			return applyTransform(config.Default, config)
		}
		if config.Required {
			return nil, fmt.Errorf("field la required nhung khong co gia tri")
		}
		return nil, nil
	}

	// String rong duoc coi nhu khong co gia tri
	if strValue, ok := value.(string); ok && strValue == "" {
		if config.Default != "" {
			return applyTransform(config.Default, config)
		}
		if config.Required {
			return nil, fmt.Errorf("field la required nhung gia tri rong")
		}
		return nil, nil
	}

	return applyTransform(value, config)
}

func applyTransform(value interface{}, config *transformTagConfig) (interface{}, error) {
	switch config.Type {
	case "str_objectid":
		return transformToObjectID(value)
	case "str_objectid_ptr":
		return transformToObjectIDPtr(value)
	case "str_time":
		return transformToTime(value, config.Format)
	case "str_int64":
		return transformToInt64(value)
	case "str_bool":
		return transformToBool(value)
	default:
		// Khong transform, giu nguyen gia tri
		return value, nil
	}
}

func transformToObjectID(value interface{}) (primitive.ObjectID, error) {
	strValue, ok := value.(string)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("gia tri khong phai la string: %T", value)
	}
	if strValue == "" {
		return primitive.NilObjectID, nil
	}
	objID, err := primitive.ObjectIDFromHex(strValue)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("khong the convert string '%s' sang ObjectID: %w", strValue, err)
	}
	return objID, nil
}

func transformToObjectIDPtr(value interface{}) (*primitive.ObjectID, error) {
	strValue, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("gia tri khong phai la string: %T", value)
	}
	if strValue == "" {
		return nil, nil
	}
	objID, err := primitive.ObjectIDFromHex(strValue)
	if err != nil {
		return nil, fmt.Errorf("khong the convert string '%s' sang ObjectID: %w", strValue, err)
	}
	return &objID, nil
}

func transformToTime(value interface{}, format string) (int64, error) {
	strValue, ok := value.(string)
	if !ok {
		return 0, fmt.Errorf("gia tri khong phai la string: %T", value)
	}
	if strValue == "" {
		return 0, nil
	}
	t, err := time.Parse(format, strValue)
	if err != nil {
		return 0, fmt.Errorf("khong the parse time '%s' voi format '%s': %w", strValue, format, err)
	}
	return t.UnixMilli(), nil
}

func transformToInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case float32:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("khong the convert %T sang int64", value)
	}
}

func transformToBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	default:
		return false, fmt.Errorf("khong the convert %T sang bool", value)
	}
}
