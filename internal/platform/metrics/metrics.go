// Package metrics provides observability for the pet server.
package metrics

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Collector gathers runtime counters for the simulation and its edges.
type Collector struct {
	// Simulation
	TickCount      int64
	ActionsHandled int64
	StageChanges   int64

	// Persistence
	SnapshotSaves      int64
	SnapshotSaveErrors int64
	EventWrites        int64
	EventWriteErrors   int64

	// WebSocket
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64

	StartTime time.Time
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordTick records one completed simulation tick.
func (c *Collector) RecordTick() {
	atomic.AddInt64(&c.TickCount, 1)
}

// RecordAction records one handled care action.
func (c *Collector) RecordAction() {
	atomic.AddInt64(&c.ActionsHandled, 1)
}

// RecordStageChange records a lifecycle transition.
func (c *Collector) RecordStageChange() {
	atomic.AddInt64(&c.StageChanges, 1)
}

// RecordSnapshotSave records the outcome of a snapshot write.
func (c *Collector) RecordSnapshotSave(err error) {
	if err != nil {
		atomic.AddInt64(&c.SnapshotSaveErrors, 1)
		return
	}
	atomic.AddInt64(&c.SnapshotSaves, 1)
}

// RecordEventWrite records the outcome of a ledger write.
func (c *Collector) RecordEventWrite(err error) {
	if err != nil {
		atomic.AddInt64(&c.EventWriteErrors, 1)
		return
	}
	atomic.AddInt64(&c.EventWrites, 1)
}

// WSConnected / WSDisconnected track the active connection gauge.
func (c *Collector) WSConnected() {
	atomic.AddInt64(&c.WSConnectionsActive, 1)
}

func (c *Collector) WSDisconnected() {
	atomic.AddInt64(&c.WSConnectionsActive, -1)
}

// RecordWSMessageIn counts a frame received from a client.
func (c *Collector) RecordWSMessageIn() {
	atomic.AddInt64(&c.WSMessagesIn, 1)
}

// RecordWSMessageOut counts a frame broadcast to clients.
func (c *Collector) RecordWSMessageOut() {
	atomic.AddInt64(&c.WSMessagesOut, 1)
}

// snapshot is the JSON shape served by Handler.
type snapshot struct {
	UptimeSeconds       float64 `json:"uptime_seconds"`
	TickCount           int64   `json:"tick_count"`
	ActionsHandled      int64   `json:"actions_handled"`
	StageChanges        int64   `json:"stage_changes"`
	SnapshotSaves       int64   `json:"snapshot_saves"`
	SnapshotSaveErrors  int64   `json:"snapshot_save_errors"`
	EventWrites         int64   `json:"event_writes"`
	EventWriteErrors    int64   `json:"event_write_errors"`
	WSConnectionsActive int64   `json:"ws_connections_active"`
	WSMessagesIn        int64   `json:"ws_messages_in"`
	WSMessagesOut       int64   `json:"ws_messages_out"`
}

// Handler serves the current counters as JSON.
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := snapshot{
			UptimeSeconds:       time.Since(c.StartTime).Seconds(),
			TickCount:           atomic.LoadInt64(&c.TickCount),
			ActionsHandled:      atomic.LoadInt64(&c.ActionsHandled),
			StageChanges:        atomic.LoadInt64(&c.StageChanges),
			SnapshotSaves:       atomic.LoadInt64(&c.SnapshotSaves),
			SnapshotSaveErrors:  atomic.LoadInt64(&c.SnapshotSaveErrors),
			EventWrites:         atomic.LoadInt64(&c.EventWrites),
			EventWriteErrors:    atomic.LoadInt64(&c.EventWriteErrors),
			WSConnectionsActive: atomic.LoadInt64(&c.WSConnectionsActive),
			WSMessagesIn:        atomic.LoadInt64(&c.WSMessagesIn),
			WSMessagesOut:       atomic.LoadInt64(&c.WSMessagesOut),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	}
}
