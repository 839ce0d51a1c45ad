// Package statusapi exposes the latest telemetry/health snapshot as JSON
// over an optional local HTTP server, for external tooling that does not
// want to speak the USB wire protocol directly. It is an ambient
// convenience and never a substitute for the USB control path.
package statusapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tcl125/fredbridge/internal/hosttransport"
	"github.com/tcl125/fredbridge/internal/wire"
)

// Snapshot is the last-observed telemetry state, refreshed by a poll
// loop running alongside the HTTP server.
type Snapshot struct {
	Tick             uint32    `json:"tick"`
	XCounts          int32     `json:"x_counts"`
	ZCounts          int32     `json:"z_counts"`
	RPM              uint16    `json:"rpm"`
	TelemetryEnabled bool      `json:"telemetry_enabled"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Server polls a hosttransport.Transport and serves the latest snapshot
// plus basic health over gin.
type Server struct {
	Transport hosttransport.Transport

	mu       sync.RWMutex
	snapshot Snapshot
	lastErr  error
}

// New returns a Server polling tr.
func New(tr hosttransport.Transport) *Server {
	return &Server{Transport: tr}
}

// Router builds the gin engine exposing /telemetry and /health.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/")
	api.GET("/telemetry", s.handleTelemetry)
	api.GET("/health", s.handleHealth)
	return router
}

// PollOnce refreshes the cached snapshot by issuing one SnapshotReq.
func (s *Server) PollOnce() {
	replies, err := s.Transport.Transact(wire.SnapshotReqPacket(0))
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return
	}
	for _, r := range replies {
		if r.MsgType == wire.Telemetry {
			tick, xCounts, zCounts, rpm, flags := wire.DecodeTelemetry(r)
			s.snapshot = Snapshot{
				Tick:             tick,
				XCounts:          xCounts,
				ZCounts:          zCounts,
				RPM:              rpm,
				TelemetryEnabled: flags&0x01 != 0,
				UpdatedAt:        time.Now(),
			}
			s.lastErr = nil
			return
		}
	}
}

// Run polls every period until stop is closed.
func (s *Server) Run(period time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	s.PollOnce()
	for {
		select {
		case <-ticker.C:
			s.PollOnce()
		case <-stop:
			return
		}
	}
}

func (s *Server) handleTelemetry(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastErr != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": s.lastErr.Error()})
		return
	}
	c.JSON(http.StatusOK, s.snapshot)
}

func (s *Server) handleHealth(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := "ok"
	if s.lastErr != nil {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "updated_at": s.snapshot.UpdatedAt})
}
