// Package main runs the hydraulic/electrical network simulator core as
// a standalone process: a fixed-rate tick loop driving internal/sim,
// a host variable I/O HTTP API, a Prometheus metrics endpoint, and a
// WebSocket telemetry feed. Grounded on the teacher's
// cmd/valkyrie/main.go lifecycle (flags, Initialize/Start/Shutdown,
// net/http status server, signal handling), narrowed from Valkyrie's
// autonomous-flight subsystems to this core's hydraulic/electrical
// subsystems.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/flightdeck/hydraulicsim/internal/config"
	"github.com/flightdeck/hydraulicsim/internal/sim"
	"github.com/flightdeck/hydraulicsim/pkg/metrics"
	"github.com/flightdeck/hydraulicsim/pkg/obslog"
	"github.com/flightdeck/hydraulicsim/pkg/telemetry"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
	gitCommit = "unknown"

	httpPort    = flag.Int("http-port", 8090, "HTTP API port")
	metricsPort = flag.Int("metrics-port", 9090, "Prometheus metrics port")
	configFile  = flag.String("config", "", "Configuration YAML file path (defaults baked in if empty)")
	tickHz      = flag.Float64("tick-hz", 100.0, "Outer tick rate the host loop runs at")

	enableTelemetry = flag.Bool("telemetry", true, "Enable WebSocket telemetry feed")
)

// Core is the running process: the simulator, its tick driver, and the
// surrounding HTTP/metrics/telemetry plumbing.
type Core struct {
	sim    *sim.Simulator
	logger *logrus.Logger
	met    *metrics.Metrics
	stream *telemetry.Streamer
	runID  string

	httpServer    *http.Server
	metricsServer *http.Server

	mu     sync.RWMutex
	inputs sim.Inputs
	last   sim.Outputs

	running bool

	ctx    context.Context
	cancel context.CancelFunc
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	core := &Core{ctx: ctx, cancel: cancel}

	if err := core.Initialize(); err != nil {
		core.logFatal("failed to initialize simulator core", err)
	}

	if err := core.Start(); err != nil {
		core.logFatal("failed to start simulator core", err)
	}

	core.logger.WithFields(logrus.Fields{
		"version":    version,
		"http_port":  *httpPort,
		"metrics_port": *metricsPort,
	}).Info("simulator core operational")

	<-sigChan
	core.logger.Info("shutdown signal received, stopping")

	if err := core.Shutdown(); err != nil {
		core.logger.WithError(err).Error("shutdown error")
	}
	core.logger.Info("shutdown complete")
}

func (c *Core) logFatal(msg string, err error) {
	if c.logger != nil {
		c.logger.WithError(err).Fatal(msg)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// Initialize loads configuration and builds every subsystem.
func (c *Core) Initialize() error {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c.logger = obslog.New(cfg.LogLevel)
	c.runID = uuid.NewString()
	c.logger.WithField("run_id", c.runID).Info("initializing hydraulic/electrical network simulator core")

	c.sim = sim.New(cfg)
	c.met = metrics.Get()
	if *enableTelemetry {
		c.stream = telemetry.NewStreamer(c.logger)
	}

	return nil
}

// Start begins the tick loop, the metrics server, and the HTTP API.
func (c *Core) Start() error {
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()

	if c.stream != nil {
		go func() {
			if err := c.stream.Run(c.ctx); err != nil && err != context.Canceled {
				c.logger.WithError(err).Warn("telemetry streamer stopped")
			}
		}()
	}

	go c.runTickLoop()

	if err := c.startMetricsServer(); err != nil {
		return fmt.Errorf("starting metrics server: %w", err)
	}
	if err := c.startHTTPServer(); err != nil {
		return fmt.Errorf("starting http server: %w", err)
	}

	return nil
}

// Shutdown stops the tick loop and every server gracefully.
func (c *Core) Shutdown() error {
	c.cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(shutdownCtx); err != nil {
			c.logger.WithError(err).Warn("http server shutdown error")
		}
	}
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(shutdownCtx); err != nil {
			c.logger.WithError(err).Warn("metrics server shutdown error")
		}
	}

	c.mu.Lock()
	c.running = false
	c.mu.Unlock()

	return nil
}

// runTickLoop drives the simulator at tickHz, the host's outer loop
// (spec.md section 5: the host samples inputs, calls the tick, and
// writes outputs back out once per outer tick).
func (c *Core) runTickLoop() {
	dt := 1.0 / *tickHz
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.tick(dt)
		}
	}
}

func (c *Core) tick(dt float64) {
	start := time.Now()

	c.mu.Lock()
	in := c.inputs
	c.mu.Unlock()

	out := c.sim.Tick(dt, in)

	c.mu.Lock()
	c.last = out
	c.mu.Unlock()

	c.met.TickDuration.Observe(time.Since(start).Seconds())
	c.recordMetrics(out)

	if c.stream != nil {
		c.stream.Broadcast(&telemetry.Snapshot{
			Timestamp:              start,
			RunID:                  c.runID,
			GreenSystemPressurePa:  out.GreenSystemPressurePa,
			BlueSystemPressurePa:   out.BlueSystemPressurePa,
			YellowSystemPressurePa: out.YellowSystemPressurePa,
			PTUState:               out.PTUStateCode,
			PTUAcousticActive:      out.PTUAcousticActive,
			AutobrakeState:         out.AutobrakeArmedModeCode,
			NoseWheelAngleDeg:      out.NoseWheelAngleDeg,
			RATStowRatio:           out.RATStowRatio,
			RATRPM:                 out.RATRPM,
			EmergencyElecLatched:   out.EmergencyElecLatched,
			FaultLamps:             out.FaultLamps,
		})
	}
}

func (c *Core) recordMetrics(out sim.Outputs) {
	c.met.CircuitSystemPressurePa.WithLabelValues("green").Set(out.GreenSystemPressurePa)
	c.met.CircuitSystemPressurePa.WithLabelValues("blue").Set(out.BlueSystemPressurePa)
	c.met.CircuitSystemPressurePa.WithLabelValues("yellow").Set(out.YellowSystemPressurePa)

	c.met.ReservoirVolumeM3.WithLabelValues("green").Set(out.ReservoirVolumeM3[0])
	c.met.ReservoirVolumeM3.WithLabelValues("blue").Set(out.ReservoirVolumeM3[1])
	c.met.ReservoirVolumeM3.WithLabelValues("yellow").Set(out.ReservoirVolumeM3[2])

	c.met.PTUState.Set(float64(out.PTUStateCode))
	if out.PTUAcousticActive {
		c.met.PTUAcoustic.Set(1)
	} else {
		c.met.PTUAcoustic.Set(0)
	}

	c.met.AutobrakeState.Set(float64(out.AutobrakeArmedModeCode))
	c.met.RATStowRatio.Set(out.RATStowRatio)
	c.met.RATRPM.Set(out.RATRPM)

	for name, powered := range out.BusPowered {
		if powered {
			c.met.BusPowered.WithLabelValues(name).Set(1)
		} else {
			c.met.BusPowered.WithLabelValues(name).Set(0)
		}
	}

	if out.EmergencyElecLatched {
		c.met.EmergencyElecLatched.Set(1)
	} else {
		c.met.EmergencyElecLatched.Set(0)
	}

	for name, overheated := range map[string]bool{
		"YELLOW_ELEC": out.FaultLamps["YELLOW_ELEC_PUMP_OVERHEAT"],
		"BLUE_ELEC":   out.FaultLamps["BLUE_ELEC_PUMP_OVERHEAT"],
	} {
		if overheated {
			c.met.PumpOverheated.WithLabelValues(name).Set(1)
		} else {
			c.met.PumpOverheated.WithLabelValues(name).Set(0)
		}
	}
}

func (c *Core) startMetricsServer() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	c.metricsServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", *metricsPort),
		Handler: mux,
	}
	go func() {
		c.logger.WithField("port", *metricsPort).Info("metrics server listening")
		if err := c.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.WithError(err).Error("metrics server error")
		}
	}()
	return nil
}

func (c *Core) startHTTPServer() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", c.healthHandler)
	mux.HandleFunc("/api/v1/version", c.versionHandler)
	mux.HandleFunc("/api/v1/outputs", c.outputsHandler)
	mux.HandleFunc("/api/v1/inputs", c.inputsHandler)

	if c.stream != nil {
		mux.HandleFunc("/ws/telemetry", c.stream.HandleWebSocket)
	}

	c.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", *httpPort),
		Handler: mux,
	}
	go func() {
		c.logger.WithField("port", *httpPort).Info("http api listening")
		if err := c.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.WithError(err).Error("http server error")
		}
	}()
	return nil
}

func (c *Core) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"service": "simcore",
		"version": version,
	})
}

func (c *Core) versionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"version":    version,
		"build_time": buildTime,
		"git_commit": gitCommit,
	})
}

// outputsHandler returns the most recent tick's host variable I/O
// output snapshot.
func (c *Core) outputsHandler(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	out := c.last
	c.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// inputsHandler lets an external host (or test harness) read the
// currently-applied host variable I/O inputs, or replace them wholesale
// via POST — standing in for the shared-memory I/O block a real
// simulator host would write each frame.
func (c *Core) inputsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.mu.RLock()
		in := c.inputs
		c.mu.RUnlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(in)
	case http.MethodPost:
		var in sim.Inputs
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		c.mu.Lock()
		c.inputs = in
		c.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
