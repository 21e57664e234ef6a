package domain

// ListQuery 列表查询描述符：由 catalog.Build 构造，repo 层翻译为存储查询
type ListQuery struct {
	Category     string   // 空 = 不过滤
	Search       string   // 空 = 不搜索
	SearchFields []string // 大小写不敏感子串匹配，OR 连接
	OrderBy      string   // SQL order 子句
	Offset       int
	Limit        int
	Page         int
}
