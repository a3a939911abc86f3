package router

import (
	"context"
	"net/http"

	mem "vet-patient-records/internal/adapters/storage/memory"
	_ "vet-patient-records/internal/docs"
	"vet-patient-records/internal/domain/patients"
	"vet-patient-records/internal/domain/users"
	"vet-patient-records/internal/middleware"
	"vet-patient-records/internal/platform/logger"
	"vet-patient-records/internal/ports/kv"
	"vet-patient-records/internal/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, in-memory (se pierde al reiniciar).
	Store kv.Store

	Logger logger.Logger

	// Prefijo de claves en el store (varias clínicas sobre el mismo Redis/Postgres).
	Namespace string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = mem.NewKVStore()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	adapter := storage.NewAdapter(store, storage.Options{Logger: log, Namespace: opts.Namespace})

	// Services por módulo
	sessions := users.NewManager(adapter, log)
	if err := sessions.EnsureDefaultAccount(context.Background()); err != nil {
		// no es fatal: /health y /swagger siguen respondiendo
		log.Error("seed default account failed", map[string]any{"error": err})
	}
	patientsSvc := patients.NewService(patients.NewStoreRepository(adapter))

	r.Use(middleware.SessionContext(sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	users.RegisterRoutes(r, sessions)
	patients.RegisterRoutes(r, patientsSvc)

	return r
}
