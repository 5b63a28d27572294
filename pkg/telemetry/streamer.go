// Package telemetry broadcasts per-tick simulator snapshots to
// WebSocket clients. Grounded on `Valkyrie/internal/livefeed/streamer.go`'s
// hub shape (register/unregister, buffered broadcast channel, one
// goroutine fanning out to per-client send channels), narrowed to a
// single clearance tier since the simulator core has no multi-tenant
// access model.
package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Snapshot is one tick's worth of host-I/O-shaped simulator state,
// broadcast to every connected client (spec.md section 6 "Host variable
// I/O" output list, narrowed to the fields useful for a telemetry
// viewer rather than the full sim-to-host variable set).
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`

	GreenSystemPressurePa  float64 `json:"green_system_pressure_pa"`
	BlueSystemPressurePa   float64 `json:"blue_system_pressure_pa"`
	YellowSystemPressurePa float64 `json:"yellow_system_pressure_pa"`

	PTUState       int  `json:"ptu_state"`
	PTUAcousticActive bool `json:"ptu_acoustic_active"`

	AutobrakeState  int     `json:"autobrake_state"`
	AutobrakeDemand float64 `json:"autobrake_demand"`

	NoseWheelAngleDeg float64 `json:"nose_wheel_angle_deg"`

	RATStowRatio float64 `json:"rat_stow_ratio"`
	RATRPM       float64 `json:"rat_rpm"`

	EmergencyElecLatched bool `json:"emergency_elec_latched"`

	FaultLamps map[string]bool `json:"fault_lamps,omitempty"`
}

// Client is one connected WebSocket subscriber.
type Client struct {
	conn *websocket.Conn
	send chan *Snapshot
	id   string
}

// Streamer fans out Snapshots to every connected client.
type Streamer struct {
	mu      sync.RWMutex
	clients map[*Client]bool

	broadcast chan *Snapshot
	upgrader  websocket.Upgrader

	logger *logrus.Logger

	messagesSent  uint64
	clientsServed uint64
}

// NewStreamer builds a streamer logging through the given logger.
func NewStreamer(logger *logrus.Logger) *Streamer {
	return &Streamer{
		clients:   make(map[*Client]bool),
		broadcast: make(chan *Snapshot, 100),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// HandleWebSocket upgrades an HTTP request and registers the resulting
// client.
func (s *Streamer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Error("failed to upgrade websocket")
		return
	}

	client := &Client{conn: conn, send: make(chan *Snapshot, 50), id: r.RemoteAddr}
	s.registerClient(client)
	s.logger.WithField("client", client.id).Info("telemetry client connected")

	ctx, cancel := context.WithCancel(context.Background())
	go s.writePump(ctx, client)
	go s.readPump(ctx, cancel, client)
}

func (s *Streamer) registerClient(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = true
	s.clientsServed++
}

func (s *Streamer) unregisterClient(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
		s.logger.WithField("client", c.id).Info("telemetry client disconnected")
	}
}

// Broadcast enqueues a snapshot for delivery, dropping the oldest
// pending snapshot if the channel is full rather than blocking the
// caller's tick loop.
func (s *Streamer) Broadcast(snap *Snapshot) {
	select {
	case s.broadcast <- snap:
	default:
		select {
		case <-s.broadcast:
		default:
		}
		s.broadcast <- snap
	}
}

// Run drains the broadcast channel until ctx is cancelled.
func (s *Streamer) Run(ctx context.Context) error {
	s.logger.Info("telemetry streamer started")
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return ctx.Err()
		case snap := <-s.broadcast:
			s.fanOut(snap)
		}
	}
}

func (s *Streamer) fanOut(snap *Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		select {
		case c.send <- snap:
			s.messagesSent++
		default:
		}
	}
}

func (s *Streamer) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.conn.Close()
		close(c.send)
		delete(s.clients, c)
	}
}

// Stats returns the current client count and lifetime message counters.
func (s *Streamer) Stats() (clients int, sent, served uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients), s.messagesSent, s.clientsServed
}

func (s *Streamer) writePump(ctx context.Context, c *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			data, err := json.Marshal(snap)
			if err != nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Streamer) readPump(ctx context.Context, cancel context.CancelFunc, c *Client) {
	defer func() {
		cancel()
		s.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
