package catalog

import (
	"strings"

	"sustainably-yours/internal/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params 列表接口的原始查询参数（gin form 绑定）
type Params struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	SortBy   string `form:"sortBy"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
}

// 排序键 → order 子句；未识别的键回落到 created_at desc
var sortClauses = map[string]string{
	"rating":         "average_rating DESC",
	"sustainability": "sustainability_score DESC",
	"price-low":      "price ASC",
	"price-high":     "price DESC",
}

const defaultOrder = "created_at DESC"

// Build 把请求参数翻译为查询描述符。page/limit 做钳制，
// 负数或越界输入不会产生负 offset
func Build(p Params, searchFields ...string) domain.ListQuery {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	order, ok := sortClauses[p.SortBy]
	if !ok {
		order = defaultOrder
	}

	category := strings.TrimSpace(p.Category)
	if category == "all" {
		category = ""
	}

	return domain.ListQuery{
		Category:     category,
		Search:       strings.TrimSpace(p.Search),
		SearchFields: searchFields,
		OrderBy:      order,
		Offset:       (page - 1) * limit,
		Limit:        limit,
		Page:         page,
	}
}

// Pages 总页数 = ceil(total/limit)
func Pages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
