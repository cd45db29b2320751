package utils

import (
	"errors"
	"math"
)

// math.go - математика конвертации для симулированных свопов
//
// Назначение:
// Чистые функции расчета обменного курса и целевой суммы по спот-ценам.
// Все функции без побочных эффектов.

// Ошибки конвертации
var (
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrNonPositivePrice  = errors.New("price must be greater than zero")
)

// ConvertResult - результат расчета конвертации
type ConvertResult struct {
	AmountTo float64 // целевая сумма БЕЗ округления
	Rate     float64 // обменный курс БЕЗ округления
}

// Convert вычисляет результат конвертации amountFrom единиц исходного
// актива в целевой актив по их USD спот-ценам.
//
// Формулы:
//
//	amountTo = amountFrom × priceFromUSD / priceToUSD
//	rate     = priceFromUSD / priceToUSD
//
// Параметры:
//   - amountFrom: исходная сумма (> 0)
//   - priceFromUSD: USD цена исходного актива (> 0)
//   - priceToUSD: USD цена целевого актива (> 0)
//
// Возвращает:
//   - ConvertResult с неокругленными значениями
//   - ErrNonPositiveAmount если amountFrom <= 0
//   - ErrNonPositivePrice если любая из цен <= 0 (в т.ч. отсутствующая
//     цена, представленная нулем)
//
// Примеры:
//   - Convert(1, 50000, 2500) = {AmountTo: 20, Rate: 20}
//   - Convert(2, 100, 400) = {AmountTo: 0.5, Rate: 0.25}
func Convert(amountFrom, priceFromUSD, priceToUSD float64) (ConvertResult, error) {
	if amountFrom <= 0 || math.IsNaN(amountFrom) || math.IsInf(amountFrom, 0) {
		return ConvertResult{}, ErrNonPositiveAmount
	}
	if priceFromUSD <= 0 || priceToUSD <= 0 {
		return ConvertResult{}, ErrNonPositivePrice
	}

	return ConvertResult{
		AmountTo: amountFrom * priceFromUSD / priceToUSD,
		Rate:     priceFromUSD / priceToUSD,
	}, nil
}

// Round8 округляет значение до 8 знаков после запятой.
//
// Используется только при формировании API ответов - в историю свопов
// записывается неокругленное значение (оно каноническое).
//
// Округление ровно посередине зависит от двоичного представления
// аргумента: 1.5e-8 хранится чуть ниже половины и дает 1e-8
// (как и toFixed(8)).
//
// Примеры:
//   - Round8(20.123456789) = 20.12345679
//   - Round8(0.1) = 0.1
func Round8(value float64) float64 {
	return math.Round(value*1e8) / 1e8
}
