package models

// PageParams — параметры постраничной выдачи по номеру страницы (1-based).
type PageParams struct {
	Page  int32
	Limit int32
}

// Offset — количество пропускаемых записей.
func (p PageParams) Offset() int64 {
	if p.Page <= 1 {
		return 0
	}

	return int64(p.Page-1) * int64(p.Limit)
}

// PageInfo — метаданные страницы.
type PageInfo struct {
	Page  int32
	Limit int32
	Total int64
}

// TotalPages — число страниц при текущем лимите.
func (p PageInfo) TotalPages() int64 {
	if p.Limit <= 0 {
		return 0
	}

	return (p.Total + int64(p.Limit) - 1) / int64(p.Limit)
}

// HasMore — есть ли страницы после текущей.
func (p PageInfo) HasMore() bool {
	return int64(p.Page) < p.TotalPages()
}

// ListParams — параметры курсорной выдачи (ветки комментариев).
type ListParams struct {
	PageSize  int32
	PageToken string
}
