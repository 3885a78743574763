package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeOperator 大小写不敏感的模糊匹配操作符
// sqlite 的 LIKE 对 ASCII 本身不区分大小写，postgres 需使用 ILIKE
func likeOperator(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// anyColumnLike 生成 "a LIKE ? OR b LIKE ?" 形式的条件与参数
func anyColumnLike(db *gorm.DB, keyword string, columns ...string) (string, []interface{}) {
	op := likeOperator(dbDialectName(db))
	pattern := likePattern(keyword)
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, fmt.Sprintf("%s %s ?", column, op))
		args = append(args, pattern)
	}
	return strings.Join(parts, " OR "), args
}
