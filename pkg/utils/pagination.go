package utils

import "strconv"

// 分页默认值
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination 分页请求参数，页码从 1 开始
type Pagination struct {
	Page    int `json:"page" form:"page"`
	PerPage int `json:"per_page" form:"per_page"`
}

// PageResult 分页响应结果
type PageResult struct {
	List        interface{} `json:"list"`
	TotalPage   int         `json:"total_page"`
	CurrentPage int         `json:"current_page"`
}

// ParsePagination 解析分页参数，非法输入回退到默认值而不是报错
func ParsePagination(page, perPage string) Pagination {
	p := Pagination{Page: DefaultPage, PerPage: DefaultPerPage}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(perPage); err == nil && n > 0 {
		p.PerPage = n
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset 计算分页偏移量
func (p *Pagination) Offset() (int, int) {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return (p.Page - 1) * p.PerPage, p.PerPage
}

// TotalPages 根据总条数计算总页数
// 超出范围的页码返回空列表，但总页数与第一页一致
func TotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
