// Package main is the entry point for the virtual-pet server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/marissaabao/tamagotchi/internal/engine"
	"github.com/marissaabao/tamagotchi/internal/events"
	"github.com/marissaabao/tamagotchi/internal/infra/storage"
	"github.com/marissaabao/tamagotchi/internal/network"
	"github.com/marissaabao/tamagotchi/internal/platform/clock"
	"github.com/marissaabao/tamagotchi/internal/platform/config"
	"github.com/marissaabao/tamagotchi/internal/platform/logger"
	"github.com/marissaabao/tamagotchi/internal/platform/metrics"
)

// sqliteEventPersister translates domain events to ledger records.
type sqliteEventPersister struct {
	repo   *storage.SQLiteEventRepository
	logger *logger.Logger
}

func (p *sqliteEventPersister) Append(event events.PetEvent) error {
	record := storage.EventRecord{
		ID:        event.ID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		Stage:     string(event.Stage),
		Age:       event.Age,
		Detail:    event.Detail,
	}
	err := p.repo.Append(context.Background(), record)
	metrics.Get().RecordEventWrite(err)
	if err != nil {
		p.logger.Warn("Event ledger write failed: " + err.Error())
	}
	return err
}

func main() {
	log.Println("[PET-SERVER] Initializing virtual pet server...")

	appLogger := logger.NewLogger()
	cfg := config.Load(appLogger)
	clk := clock.RealClock{}

	appLogger.Info("Initializing SQLite database '" + cfg.DBPath + "'...")
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: " + err.Error())
		os.Exit(1)
	}

	snapshotRepo := storage.NewSnapshotRepository(db)
	eventRepo := storage.NewSQLiteEventRepository(db)
	eventLog := events.NewEventLog(&sqliteEventPersister{repo: eventRepo, logger: appLogger})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info("Bootstrapping simulation engine...")
	petEngine := engine.NewEngine(clk, appLogger, eventLog)

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(appLogger, petEngine, func() any { return petEngine.State() })
	go hub.Run(ctx)

	// Write-through persistence plus state feed: invoked synchronously at
	// the end of every tick, action, and stage transition. Storage
	// failures are logged and counted, never surfaced to the simulation.
	saveSnapshot := func(s engine.State) {
		snap := storage.Snapshot{
			Version: storage.SnapshotVersion,
			Stage:   string(s.Stage),
			Age:     s.Age,
			Pet:     s.Pet,
		}
		err := snapshotRepo.Save(context.Background(), snap)
		metrics.Get().RecordSnapshotSave(err)
		if err != nil {
			appLogger.Warn("Snapshot save failed, simulation continues: " + err.Error())
		}
	}
	petEngine.OnStateChange(saveSnapshot)
	petEngine.OnStateChange(func(s engine.State) { hub.Broadcast(s) })

	appLogger.Info("Restoring persisted pet state...")
	restorer := storage.NewRestorer(snapshotRepo, clk, appLogger)
	initial := restorer.Restore(ctx)
	petEngine.Restore(initial.Stage, initial.Age, initial.Pet)
	saveSnapshot(petEngine.State())

	// HTTP + WebSocket surface
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})

	http.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(petEngine.State())
	})

	http.HandleFunc("/api/action", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Command string `json:"command"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if !petEngine.Dispatch(req.Command) {
			http.Error(w, "Unknown command", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(petEngine.State())
	})

	http.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		records, err := eventRepo.GetRecent(r.Context(), 50)
		if err != nil {
			http.Error(w, "Failed to read event history", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	})

	http.HandleFunc("/metrics", metrics.Get().Handler())

	go func() {
		log.Printf("[PET-SERVER] HTTP API & WS Server listening on %s", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[PET-SERVER] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[PET-SERVER] Shutting down...")
	petEngine.Shutdown()
	saveSnapshot(petEngine.State())
	cancel()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests from the dev frontend
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection")
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
