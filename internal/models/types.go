package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// StringArray 字符串数组类型，用于存储配料、过敏原、饮食选项等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	payload, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = StringArray{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported StringArray source: %T", value)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		*s = StringArray{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// newID 生成字符串主键
func newID() string {
	return uuid.NewString()
}

// ensureID 为空主键补齐 UUID
func ensureID(id *string) {
	if id != nil && strings.TrimSpace(*id) == "" {
		*id = newID()
	}
}
