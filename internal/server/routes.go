package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"imposterparty/internal/config"
	"imposterparty/internal/db"
	"imposterparty/internal/events"
	"imposterparty/internal/game"
	"imposterparty/internal/metrics"
	"imposterparty/internal/random"
	"imposterparty/internal/rooms"
	"imposterparty/internal/sessions"
	"imposterparty/internal/wshub"
	"imposterparty/internal/words"
)

func Run() error {
	appCfg := config.Load()

	wordList := words.Default()
	if appCfg.WordlistPath != "" {
		wl, err := words.Load(appCfg.WordlistPath)
		if err != nil {
			log.Printf("[Words] Failed to load %s: %v (using embedded list)\n", appCfg.WordlistPath, err)
		} else {
			wordList = wl
		}
	}
	log.Printf("[Words] %d words loaded\n", wordList.Len())

	src := random.CryptoSource{}
	roomStore := rooms.NewStore(src)
	sessionStore := sessions.NewStore()
	hub := wshub.NewHub()
	m := metrics.New("imposterparty")
	bus := events.NewBus()

	grace := time.Duration(appCfg.GracePeriod) * time.Second
	coord := game.NewCoordinator(roomStore, sessionStore, wordList, src, hub, grace)
	coord.Metrics = m
	coord.Events = bus

	srv := &Server{
		Coord:   coord,
		Hub:     hub,
		Metrics: m,
	}

	// Optional database connection
	if appCfg.DatabaseURL != "" {
		database, err := db.Connect(appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running without database)\n", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			srv.DB = database
			go roomWriter(database, bus.RoomsCreated)
			go roundBatchWriter(database, bus.RoundsStarted)
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without database")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleHome)
	mux.HandleFunc("/ws", srv.handleWS)
	mux.HandleFunc("/health", srv.handleHealth)
	mux.Handle("/metrics", metrics.Handler())

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, mux)
}

func roomWriter(database *db.DB, buffer chan events.RoomCreatedEvent) {
	for ev := range buffer {
		if err := database.RecordRoom(ev.RoomCode, ev.HostName, ev.At); err != nil {
			log.Printf("[DB] RecordRoom error: %v\n", err)
		}
	}
}

func roundBatchWriter(database *db.DB, buffer chan events.RoundStartedEvent) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	batch := make([]db.RoundRecord, 0, 50)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := database.BatchRecordRounds(batch); err != nil {
			log.Printf("[DB] BatchRecordRounds error: %v\n", err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case ev := <-buffer:
			batch = append(batch, db.RoundRecord{
				RoomCode:    ev.RoomCode,
				Word:        ev.Word,
				PlayerCount: ev.PlayerCount,
				StartedAt:   ev.At,
			})
			if len(batch) >= 50 {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
