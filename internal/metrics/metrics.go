// Package metrics содержит счетчики Prometheus и служебный HTTP-маршрутизатор.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "post_service"

var (
	// RPCRequests - количество обработанных RPC по методу и коду ответа
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grpc_requests_total",
		Help:      "Количество обработанных gRPC запросов.",
	}, []string{"method", "code"})

	// RPCDuration - время обработки RPC
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "grpc_request_duration_seconds",
		Help:      "Время обработки gRPC запроса.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	// RPCInFlight - количество запросов, занявших слот пула обработчиков
	RPCInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "grpc_requests_in_flight",
		Help:      "Количество gRPC запросов, обрабатываемых в данный момент.",
	})

	// EventsPublished - результаты отправки событий по типу события
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Количество отправленных событий.",
	}, []string{"event_type", "result"})
)

// Результаты отправки события
const (
	ResultOK        = "ok"
	ResultError     = "error"
	ResultSimulated = "simulated"
)
