// Package repository - работа с PostgreSQL через database/sql.
package repository

import (
	"fmt"
	"strings"
	"time"
)

// Лимиты пагинации
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams - общие параметры списочных запросов:
// пагинация, поиск, сортировка и границы по дате создания.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string // внешнее имя поля сортировки, проверяется по whitelist
	SortOrder string // asc|desc, регистр не важен
	DateFrom  *time.Time
	DateTo    *time.Time
}

// Normalized возвращает параметры с подставленными умолчаниями
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	p.SortOrder = normalizeSortOrder(p.SortOrder)
	return p
}

// offset вычисляет OFFSET для текущей страницы
func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

// normalizeSortOrder приводит направление сортировки к ASC/DESC (default: DESC)
func normalizeSortOrder(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

// sortColumn выбирает колонку сортировки по whitelist.
// Неизвестные значения откатываются на created_at, чтобы внешний ввод
// никогда не попадал в текст запроса.
func sortColumn(allowed map[string]string, requested string) string {
	if col, ok := allowed[requested]; ok {
		return col
	}
	return "created_at"
}

// whereBuilder накапливает условия WHERE с нумерованными плейсхолдерами
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// add добавляет условие; format должен содержать один %d под номер плейсхолдера
func (w *whereBuilder) add(format string, value interface{}) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf(format, len(w.args)))
}

// addSearch добавляет регистронезависимый substring-поиск по набору колонок
func (w *whereBuilder) addSearch(search string, columns ...string) {
	w.args = append(w.args, "%"+search+"%")
	n := len(w.args)

	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

// addDateRange добавляет включительные границы по колонке даты
func (w *whereBuilder) addDateRange(column string, from, to *time.Time) {
	if from != nil {
		w.add(column+" >= $%d", *from)
	}
	if to != nil {
		w.add(column+" <= $%d", *to)
	}
}

// clause возвращает готовый WHERE (пустая строка, если условий нет)
func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// next возвращает номер следующего плейсхолдера
func (w *whereBuilder) next() int {
	return len(w.args) + 1
}

// isUniqueViolation проверяет, является ли ошибка нарушением UNIQUE constraint
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "23505")
}
