// Package metrics expõe os contadores Prometheus do bot
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
)

const namespace = "rating_bot"

// Resultados possíveis de um ciclo de consulta
const (
	OutcomeUnchanged   = "unchanged"
	OutcomeChanged     = "changed"
	OutcomeFetchFailed = "fetch_failed"
	OutcomeStoreFailed = "store_failed"
)

type Metrics struct {
	registry            *prometheus.Registry
	polls               *prometheus.CounterVec
	notificationsSent   prometheus.Counter
	notificationsFailed prometheus.Counter
	counters            *prometheus.GaugeVec
	totalPeople         prometheus.Gauge
	lastPoll            prometheus.Gauge
}

// New cria as métricas em um registry próprio, com os coletores de processo e do runtime
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Ciclos de consulta da página de ranking por origem e resultado.",
		}, []string{"trigger", "outcome"}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Mensagens entregues aos inscritos.",
		}),
		notificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Mensagens que falharam para um destinatário.",
		}),
		counters: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "contract_counter",
			Help:      "Último valor extraído de cada contador de contrato.",
		}, []string{"counter"}),
		totalPeople: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_people",
			Help:      "Total de linhas na última página extraída.",
		}),
		lastPoll: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_poll_timestamp_seconds",
			Help:      "Instante do último snapshot gravado.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.polls,
		m.notificationsSent,
		m.notificationsFailed,
		m.counters,
		m.totalPeople,
		m.lastPoll,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serve o endpoint /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObservePoll(trigger domain.PollTrigger, outcome string) {
	m.polls.WithLabelValues(string(trigger), outcome).Inc()
}

// ObserveSnapshot atualiza os gauges com o snapshot gravado
func (m *Metrics) ObserveSnapshot(s domain.RatingSnapshot) {
	m.counters.WithLabelValues(string(domain.CounterContract)).Set(float64(s.ContractCount))
	m.counters.WithLabelValues(string(domain.CounterContractPaid)).Set(float64(s.ContractPaidCount))
	m.counters.WithLabelValues(string(domain.CounterContractUnpaid)).Set(float64(s.ContractUnpaidCount))
	m.totalPeople.Set(float64(s.TotalPeople))
	m.lastPoll.Set(float64(s.Timestamp.Unix()))
}

func (m *Metrics) NotificationSent() {
	m.notificationsSent.Inc()
}

func (m *Metrics) NotificationFailed() {
	m.notificationsFailed.Inc()
}
