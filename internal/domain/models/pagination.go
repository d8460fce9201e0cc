package models

// DefaultPageSize 列表页默认每页记录数
const DefaultPageSize = 20

// Page 描述分页结果的位置信息
// 无效或超出范围的页码不报错，而是回退到最后一页
type Page struct {
	Number             int   `json:"number"`
	PageSize           int   `json:"page_size"`
	NumPages           int   `json:"num_pages"`
	Total              int64 `json:"total"`
	HasNext            bool  `json:"has_next"`
	HasPrevious        bool  `json:"has_previous"`
	HasOtherPages      bool  `json:"has_other_pages"`
	StartIndex         int   `json:"start_index"`
	EndIndex           int   `json:"end_index"`
	NextPageNumber     *int  `json:"next_page_number"`
	PreviousPageNumber *int  `json:"previous_page_number"`
}

// NewPage 根据总数和请求页码计算分页信息
// 页码小于1或超过总页数时回退到最后一页
func NewPage(total int64, number, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	// 空列表仍然有一页
	numPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if numPages < 1 {
		numPages = 1
	}

	// 回退到最后一页
	if number < 1 || number > numPages {
		number = numPages
	}

	page := Page{
		Number:        number,
		PageSize:      pageSize,
		NumPages:      numPages,
		Total:         total,
		HasNext:       number < numPages,
		HasPrevious:   number > 1,
		HasOtherPages: numPages > 1,
	}

	// 计算本页记录的起止序号（从1开始，闭区间）
	if total > 0 {
		page.StartIndex = (number-1)*pageSize + 1
		end := int64(number) * int64(pageSize)
		if end > total {
			end = total
		}
		page.EndIndex = int(end)
	}

	if page.HasNext {
		next := number + 1
		page.NextPageNumber = &next
	}
	if page.HasPrevious {
		prev := number - 1
		page.PreviousPageNumber = &prev
	}

	return page
}

// Offset 返回本页在查询中的偏移量
func (p Page) Offset() int {
	return (p.Number - 1) * p.PageSize
}
