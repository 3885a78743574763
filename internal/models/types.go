package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray 字符串数组列，用于存储图片等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	raw, err := scanJSONBytes(value)
	if err != nil || raw == nil {
		*s = StringArray{}
		return err
	}
	return json.Unmarshal(raw, s)
}

// First 返回第一个元素，空数组返回空串
func (s StringArray) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// scanJSONBytes 兼容 sqlite(string) 与 postgres([]byte) 的取值
func scanJSONBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		if len(v) == 0 {
			return nil, nil
		}
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported json column type %T", value)
	}
}
