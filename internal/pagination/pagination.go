// Package pagination вычисляет границы страниц.
// Некорректные параметры не отклоняются, а приводятся к допустимым значениям.
package pagination

const (
	MinPage        = 1
	MinPerPage     = 1
	MaxPerPage     = 100
	DefaultPerPage = 10
)

// Params - нормализованные параметры страницы
type Params struct {
	Page    int32
	PerPage int32
}

// Result - параметры страницы вместе со смещением и количеством страниц
type Result struct {
	Params
	Offset     int64
	TotalPages int32
}

// Clamp приводит page к минимуму 1, а perPage к диапазону [1, 100]
func Clamp(page, perPage int32) Params {
	if page < MinPage {
		page = MinPage
	}
	if perPage < MinPerPage {
		perPage = MinPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Offset возвращает количество записей, которые нужно пропустить.
// Считается в int64: page не ограничен сверху и (page-1)*perPage не помещается в int32.
func (p Params) Offset() int64 {
	return int64(p.Page-1) * int64(p.PerPage)
}

// Limit возвращает размер страницы
func (p Params) Limit() int32 {
	return p.PerPage
}

// TotalPages возвращает ceil(total / PerPage), 0 для пустой выборки
func (p Params) TotalPages(total int32) int32 {
	if total <= 0 {
		return 0
	}
	return int32((int64(total) + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Paginate нормализует параметры и вычисляет смещение и количество страниц
func Paginate(page, perPage, totalCount int32) Result {
	params := Clamp(page, perPage)
	return Result{
		Params:     params,
		Offset:     params.Offset(),
		TotalPages: params.TotalPages(totalCount),
	}
}
