package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"opsdesk/internal/adapters/ai"
	emailPkg "opsdesk/internal/adapters/email"
	web "opsdesk/internal/adapters/http"
	"opsdesk/internal/adapters/http/perf"
	"opsdesk/internal/adapters/storage"
	clientStore "opsdesk/internal/adapters/storage/client"
	coachingStore "opsdesk/internal/adapters/storage/coaching"
	kpiStore "opsdesk/internal/adapters/storage/kpi"
	settingsStore "opsdesk/internal/adapters/storage/settings"
	taskStore "opsdesk/internal/adapters/storage/task"
	memberStore "opsdesk/internal/adapters/storage/teammember"
	templateStore "opsdesk/internal/adapters/storage/template"
	"opsdesk/internal/application/orchestrators"
	"opsdesk/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "opsdesk.yaml", "path to the YAML config file")
	staticDir := flag.String("static", "static", "directory served at /")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logLevel := slog.LevelDebug
	if cfg.IsProduction() {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Open the database with WAL mode, foreign keys, and a busy timeout.
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	memStore := memberStore.NewSQLiteStore(timedDB)
	kStore := kpiStore.NewSQLiteStore(timedDB)
	tplStore := templateStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		ClientStore:      clientStore.NewSQLiteStore(timedDB),
		MemberStore:      memStore,
		TaskStore:        taskStore.NewSQLiteStore(timedDB),
		KpiStore:         kStore,
		TemplateStore:    tplStore,
		SessionStore:     coachingStore.NewSQLiteSessionStore(timedDB),
		PtlStore:         coachingStore.NewSQLitePtlStore(timedDB),
		FeedForwardStore: coachingStore.NewSQLiteFeedForwardStore(timedDB),
		SettingsStore:    settingsStore.NewSQLiteStore(timedDB),
	}

	// Seed the starter dataset on an empty database
	seedDeps := orchestrators.SeedDeps{
		MemberStore:   memStore,
		KpiStore:      kStore,
		TemplateStore: tplStore,
		Settings:      stores.SettingsStore,
		Now:           time.Now,
	}
	if err := orchestrators.ExecuteSeed(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed starter data: %v", err)
	}

	// Configure the outbound email sender
	if cfg.Email.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.Email.ResendKey, cfg.Email.From))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if cfg.IsProduction() {
			log.Println("WARNING: OPSDESK_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set OPSDESK_RESEND_KEY for real delivery)")
		}
	}

	// Configure the drafting backend
	if cfg.AI.GeminiKey != "" {
		completer, err := ai.NewGemini(context.Background(), cfg.AI.GeminiKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("failed to configure drafting backend: %v", err)
		}
		web.SetCompleter(completer)
		log.Println("Drafting backend configured (Gemini)")
	} else {
		log.Println("Drafting backend disabled (set GEMINI_API_KEY to enable drafts)")
	}

	// The web layer reads the CSRF key from the environment; bridge a
	// file-provided key across.
	if cfg.CSRFKey != "" {
		os.Setenv("OPSDESK_CSRF_KEY", cfg.CSRFKey)
	}

	web.AppVersion = version
	mux := web.NewMux(*staticDir, stores, collector)

	log.Printf("OpsDesk %s starting on %s (env=%s, schema=%d)", version, cfg.Addr, cfg.Env, storage.LatestSchemaVersion())
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
