package utils

import (
	"errors"
	"time"
)

// time.go - разбор дат из query параметров
//
// Назначение:
// Параметры dateFrom/dateTo приходят либо как полный RFC3339 timestamp,
// либо как дата без времени (YYYY-MM-DD). Обе границы включительные.

// ErrInvalidDate - неразбираемое значение параметра даты
var ErrInvalidDate = errors.New("invalid date value")

// dateLayouts - поддерживаемые форматы в порядке попыток разбора
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseDateParam разбирает значение параметра даты.
//
// Возвращает ErrInvalidDate если значение не соответствует ни одному
// из поддерживаемых форматов. Дата без времени трактуется как 00:00:00 UTC.
func ParseDateParam(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseDateParamEnd разбирает верхнюю границу диапазона.
//
// Для даты без времени возвращает конец дня (23:59:59.999999999 UTC),
// чтобы граница dateTo оставалась включительной.
func ParseDateParamEnd(value string) (time.Time, error) {
	t, err := ParseDateParam(value)
	if err != nil {
		return time.Time{}, err
	}

	// Значение без компоненты времени - растягиваем до конца дня
	if len(value) == len("2006-01-02") {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC), nil
	}

	return t, nil
}
