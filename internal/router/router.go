package router

import (
	"net/http"

	"clinic-medications/internal/adapters/export/excel"
	mem "clinic-medications/internal/adapters/storage/memory"
	"clinic-medications/internal/domain/medications"
	"clinic-medications/internal/domain/prescriptions"
	"clinic-medications/internal/domain/sets"
	"clinic-medications/internal/middleware"
	"clinic-medications/internal/platform/logger"

	_ "clinic-medications/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil = sin logs

	// Opcionales: si no vienen, repos in-memory vacíos.
	Medications medications.Repository
	Sets        sets.Repository

	DaysUnits prescriptions.DaysUnits // nil = siempre 日分
	Clinic    prescriptions.Clinic

	CORSOrigins []string
	RateLimiter *middleware.RateLimiter // nil = sin límite
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.Metrics)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	medRepo := opts.Medications
	if medRepo == nil {
		medRepo = mem.NewMedicationRepo()
	}
	setRepo := opts.Sets
	if setRepo == nil {
		setRepo = mem.NewSetRepo()
	}

	// Services por módulo
	medsSvc := medications.NewService(medRepo)
	setsSvc := sets.NewService(setRepo, medsSvc)
	rxSvc := prescriptions.NewService(medsSvc, opts.DaysUnits, opts.Clinic, log.With(map[string]any{"module": "prescriptions"}))

	// Rutas por módulo
	medications.RegisterRoutes(r, medsSvc)
	sets.RegisterRoutes(r, setsSvc)
	prescriptions.RegisterRoutes(r, rxSvc, excel.NewWriter())

	return r
}
