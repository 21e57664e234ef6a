package repo

import (
	"strings"

	"gorm.io/gorm"

	"sustainably-yours/internal/domain"
)

// applySearch 大小写不敏感子串匹配，字段间 OR
func applySearch(tx *gorm.DB, q domain.ListQuery) *gorm.DB {
	if q.Search == "" || len(q.SearchFields) == 0 {
		return tx
	}
	like := "%" + strings.ToLower(q.Search) + "%"
	var sb strings.Builder
	args := make([]any, 0, len(q.SearchFields))
	for i, f := range q.SearchFields {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		sb.WriteString("LOWER(" + f + ") LIKE ?")
		args = append(args, like)
	}
	return tx.Where(sb.String(), args...)
}

// listPage 统一的 count + 排序 + 分页执行
func listPage[T any](tx *gorm.DB, q domain.ListQuery) ([]T, int64, error) {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []T
	if err := tx.Order(q.OrderBy).Offset(q.Offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
