package ipm

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by readers.
// One Metrics may be shared by any number of readers.
type Metrics struct {
	MessagesDecoded prometheus.Counter
	BytesConsumed   prometheus.Counter
	DecodeFailures  *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	messagesDecoded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ipm_messages_decoded_total",
		Help: "Total messages decoded",
	})

	bytesConsumed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ipm_bytes_consumed_total",
		Help: "Total bytes consumed from batch files, after decompression and unblocking",
	})

	decodeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipm_decode_failures_total",
		Help: "Total batches stopped by a decoding failure",
	}, []string{"kind"})

	reg.MustRegister(messagesDecoded, bytesConsumed, decodeFailures)

	return &Metrics{
		MessagesDecoded: messagesDecoded,
		BytesConsumed:   bytesConsumed,
		DecodeFailures:  decodeFailures,
	}
}

func (m *Metrics) consumed(n int64) {
	if m == nil || n <= 0 {
		return
	}

	m.BytesConsumed.Add(float64(n))
}

func (m *Metrics) decoded() {
	if m == nil {
		return
	}

	m.MessagesDecoded.Inc()
}

func (m *Metrics) failed(err error) {
	if m == nil {
		return
	}

	m.DecodeFailures.WithLabelValues(Kind(err)).Inc()
}
