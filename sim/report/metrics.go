package report

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all exported metrics
	namespace = "minesim"
)

// runMetrics holds the gauges describing one finished run.
type runMetrics struct {
	ticks          prometheus.Gauge
	elapsedMinutes prometheus.Gauge
	unitsDeposited prometheus.Gauge

	truckUnits     *prometheus.GaugeVec
	truckMinutes   *prometheus.GaugeVec
	stationUnits   *prometheus.GaugeVec
	stationWait    *prometheus.GaugeVec
	mineLoads      *prometheus.GaugeVec
	traceDecisions *prometheus.GaugeVec
}

func newRunMetrics() *runMetrics {
	return &runMetrics{
		ticks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "ticks",
			Help:      "Number of simulation ticks executed",
		}),
		elapsedMinutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "elapsed_minutes",
			Help:      "Simulated minutes elapsed",
		}),
		unitsDeposited: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "units_deposited",
			Help:      "Total units deposited across all stations",
		}),
		truckUnits: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "truck",
				Name:      "units_mined",
				Help:      "Units mined and deposited by truck",
			},
			[]string{"truck"},
		),
		truckMinutes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "truck",
				Name:      "activity_minutes",
				Help:      "Minutes a truck spent in each activity",
			},
			[]string{"truck", "activity"},
		),
		stationUnits: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "station",
				Name:      "units_deposited",
				Help:      "Units deposited by station",
			},
			[]string{"station"},
		),
		stationWait: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "station",
				Name:      "wait_minutes",
				Help:      "Minutes trucks spent waiting in line by station",
			},
			[]string{"station"},
		),
		mineLoads: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "mine",
				Name:      "loads_completed",
				Help:      "Loads completed by mine",
			},
			[]string{"mine"},
		),
		traceDecisions: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "trace",
				Name:      "decisions",
				Help:      "Traced assignment decisions by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
}

func (m *runMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ticks, m.elapsedMinutes, m.unitsDeposited,
		m.truckUnits, m.truckMinutes, m.stationUnits, m.stationWait, m.mineLoads,
		m.traceDecisions,
	}
}

func (m *runMetrics) observe(r *Report) {
	res := r.Result
	m.ticks.Set(float64(res.Summary.Ticks))
	m.elapsedMinutes.Set(float64(res.Summary.ElapsedMinutes))
	m.unitsDeposited.Set(float64(res.Summary.UnitsDeposited))

	for _, t := range res.Trucks {
		id := strconv.Itoa(t.ID)
		m.truckUnits.WithLabelValues(id).Set(float64(t.UnitsMined))
		m.truckMinutes.WithLabelValues(id, "mining").Set(float64(t.MiningMinutes))
		m.truckMinutes.WithLabelValues(id, "traveling").Set(float64(t.TravelingMinutes))
		m.truckMinutes.WithLabelValues(id, "unloading").Set(float64(t.UnloadingMinutes))
		m.truckMinutes.WithLabelValues(id, "waiting").Set(float64(t.WaitingMinutes))
		m.truckMinutes.WithLabelValues(id, "idle").Set(float64(t.IdleMinutes))
	}
	for _, s := range res.Stations {
		id := strconv.Itoa(s.ID)
		m.stationUnits.WithLabelValues(id).Set(float64(s.UnitsDeposited))
		m.stationWait.WithLabelValues(id).Set(float64(s.TotalWaitMinutes))
	}
	for _, mine := range res.Mines {
		m.mineLoads.WithLabelValues(strconv.Itoa(mine.ID)).Set(float64(mine.LoadsCompleted))
	}
	if tr := res.Trace; tr != nil {
		m.traceDecisions.WithLabelValues("mine", "accepted").Set(float64(tr.MineAssignments - tr.RejectedCount))
		m.traceDecisions.WithLabelValues("mine", "rejected").Set(float64(tr.RejectedCount))
		m.traceDecisions.WithLabelValues("station", "accepted").Set(float64(tr.StationAssignments))
	}
}

// NewRegistry returns a private registry populated with r's final statistics.
func NewRegistry(r *Report) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()
	m := newRunMetrics()
	for _, c := range m.collectors() {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering run metric: %w", err)
		}
	}
	m.observe(r)
	return registry, nil
}

// WriteMetricsTextfile writes r's statistics in the Prometheus text exposition format,
// suitable for the node_exporter textfile collector.
func WriteMetricsTextfile(path string, r *Report) error {
	registry, err := NewRegistry(r)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
