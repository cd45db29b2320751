package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============ Доменные счётчики ============

// SwapsExecuted - количество успешно исполненных свопов
var SwapsExecuted = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "bitport",
		Subsystem: "swap",
		Name:      "executed_total",
		Help:      "Total number of executed swaps",
	},
)

// PriceFetchFailures - количество неудачных обращений к источнику цен
var PriceFetchFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "bitport",
		Subsystem: "pricefeed",
		Name:      "fetch_failures_total",
		Help:      "Total number of failed price source requests",
	},
)
