package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"opsdesk/internal/adapters/ai"
	"opsdesk/internal/adapters/email"
	"opsdesk/internal/adapters/http/middleware"
	"opsdesk/internal/adapters/http/perf"
	clientStore "opsdesk/internal/adapters/storage/client"
	coachingStore "opsdesk/internal/adapters/storage/coaching"
	kpiStore "opsdesk/internal/adapters/storage/kpi"
	settingsStore "opsdesk/internal/adapters/storage/settings"
	taskStore "opsdesk/internal/adapters/storage/task"
	memberStore "opsdesk/internal/adapters/storage/teammember"
	templateStore "opsdesk/internal/adapters/storage/template"
	"opsdesk/internal/application/orchestrators"
)

// Stores holds all storage dependencies.
type Stores struct {
	ClientStore      clientStore.Store
	MemberStore      memberStore.Store
	TaskStore        taskStore.Store
	KpiStore         kpiStore.Store
	TemplateStore    templateStore.Store
	SessionStore     coachingStore.SessionStore
	PtlStore         coachingStore.PtlStore
	FeedForwardStore coachingStore.FeedForwardStore
	SettingsStore    settingsStore.Store
}

// snapshotStores bundles the collection stores for export and import.
func (s *Stores) snapshotStores() orchestrators.SnapshotStores {
	return orchestrators.SnapshotStores{
		Clients:      s.ClientStore,
		Members:      s.MemberStore,
		Tasks:        s.TaskStore,
		Kpis:         s.KpiStore,
		Templates:    s.TemplateStore,
		Sessions:     s.SessionStore,
		PtlReports:   s.PtlStore,
		FeedForwards: s.FeedForwardStore,
	}
}

// loadCSRFKey reads the CSRF secret from OPSDESK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("OPSDESK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("OPSDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("OPSDESK_ENV") == "production" {
		log.Fatal("OPSDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (tokens won't survive restart). Set OPSDESK_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global task timer; one slot for the whole instance (set by NewMux)
var taskTimer *orchestrators.TaskTimer

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Global drafting backend (set by SetCompleter)
var aiCompleter ai.Completer = ai.NoopCompleter{}

// AppVersion is stamped into exported snapshots. Set from main.
var AppVersion = "dev"

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// SetCompleter sets the global drafting backend for the application.
func SetCompleter(c ai.Completer) {
	if c == nil {
		c = ai.NoopCompleter{}
	}
	aiCompleter = c
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	taskTimer = orchestrators.NewTaskTimer(s.TaskStore, nil)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
