// Package metrics provides Prometheus metrics for the hydraulic and
// electrical network simulator core. Grounded on
// `Pricilla/internal/metrics/prometheus.go`'s global-singleton +
// promauto + namespace/subsystem idiom, narrowed from PRICILLA's
// mission/stealth/payload domains to circuit pressures, pump duty, and
// bus power.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus metric the simulator core exports.
type Metrics struct {
	CircuitSystemPressurePa *prometheus.GaugeVec
	CircuitPumpPressurePa   *prometheus.GaugeVec
	ReservoirVolumeM3       *prometheus.GaugeVec
	ReservoirLowLevel       *prometheus.GaugeVec

	PumpOverheated *prometheus.GaugeVec
	PTUState       prometheus.Gauge
	PTUAcoustic    prometheus.Gauge

	AutobrakeState  prometheus.Gauge
	AutobrakeDemand prometheus.Gauge

	RATStowRatio prometheus.Gauge
	RATRPM       prometheus.Gauge

	BusPowered       *prometheus.GaugeVec
	EmergencyElecLatched prometheus.Gauge

	SubStepsPerTick prometheus.Histogram
	TickDuration    prometheus.Histogram
}

var (
	global     *Metrics
	globalOnce sync.Once
)

// Get returns the global simulator metrics instance, building it on
// first use.
func Get() *Metrics {
	globalOnce.Do(func() {
		global = newMetrics()
	})
	return global
}

func newMetrics() *Metrics {
	m := &Metrics{}

	m.CircuitSystemPressurePa = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "hydraulic",
		Name:      "circuit_system_pressure_pa",
		Help:      "System-side section pressure per circuit.",
	}, []string{"circuit"})

	m.CircuitPumpPressurePa = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "hydraulic",
		Name:      "circuit_pump_pressure_pa",
		Help:      "Pump-side section pressure per circuit.",
	}, []string{"circuit"})

	m.ReservoirVolumeM3 = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "hydraulic",
		Name:      "reservoir_volume_m3",
		Help:      "Current reservoir fluid volume per circuit.",
	}, []string{"circuit"})

	m.ReservoirLowLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "hydraulic",
		Name:      "reservoir_low_level",
		Help:      "1 if the reservoir is below its low-level threshold.",
	}, []string{"circuit"})

	m.PumpOverheated = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "hydraulic",
		Name:      "pump_overheated",
		Help:      "1 if the named pump's duty-cycle overheat flag is set.",
	}, []string{"pump"})

	m.PTUState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "hydraulic",
		Name:      "ptu_state",
		Help:      "PTU state: 0=inactive 1=active L->R 2=active R->L.",
	})

	m.PTUAcoustic = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "hydraulic",
		Name:      "ptu_acoustic_active",
		Help:      "1 while the PTU's latched acoustic discrete is active.",
	})

	m.AutobrakeState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "brakes",
		Name:      "autobrake_state",
		Help:      "Autobrake armed-mode code: 0=NONE 1=LOW 2=MED 3=MAX.",
	})

	m.AutobrakeDemand = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "brakes",
		Name:      "autobrake_demand",
		Help:      "Current autobrake governor demand in [0,1].",
	})

	m.RATStowRatio = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "rat",
		Name:      "stow_ratio",
		Help:      "RAT deploy pendulum position: 0=stowed 1=fully deployed.",
	})

	m.RATRPM = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "rat",
		Name:      "rpm",
		Help:      "RAT turbine shaft speed in rpm.",
	})

	m.BusPowered = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "electrical",
		Name:      "bus_powered",
		Help:      "1 if the named electrical bus has an effective source this tick.",
	}, []string{"bus"})

	m.EmergencyElecLatched = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hydraulicsim",
		Subsystem: "electrical",
		Name:      "emergency_elec_latched",
		Help:      "1 while the emergency-elec condition is latched.",
	})

	m.SubStepsPerTick = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hydraulicsim",
		Subsystem: "sim",
		Name:      "sub_steps_per_tick",
		Help:      "Number of fixed 10ms sub-steps drained per outer tick.",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
	})

	m.TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hydraulicsim",
		Subsystem: "sim",
		Name:      "tick_duration_seconds",
		Help:      "Wall-clock time spent processing one outer tick.",
		Buckets:   []float64{.0001, .0005, .001, .0025, .005, .01, .025, .05},
	})

	return m
}
