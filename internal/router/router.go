package router

import (
	"net/http"

	"pet-care-journal/internal/adapters/storage"
	mem "pet-care-journal/internal/adapters/storage/memory"
	_ "pet-care-journal/internal/docs"
	"pet-care-journal/internal/domain/diary"
	"pet-care-journal/internal/domain/health"
	"pet-care-journal/internal/domain/pets"
	"pet-care-journal/internal/domain/reminders"
	"pet-care-journal/internal/middleware"
	"pet-care-journal/internal/platform/logger"
	"pet-care-journal/internal/ports/auth"
	"pet-care-journal/internal/ports/photos"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultMaxUploadBytes = 10 << 20

type Options struct {
	Logger       logger.Logger
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si Repos.Pets es nil, usa in-memory.
	Repos storage.Repos

	// Photos puede ser nil: las subidas responden 503.
	Photos photos.Store
	// MediaHandler sirve las fotos locales bajo /media/.
	MediaHandler http.Handler

	MaxUploadBytes int64

	// EnableTracing envuelve el handler con xray.Handler usando AppName como segmento.
	EnableTracing bool
	AppName       string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if opts.MediaHandler != nil {
		r.Handle("/media/*", http.StripPrefix("/media", opts.MediaHandler))
	}

	repos := opts.Repos
	if repos.Pets == nil {
		s := mem.NewStore()
		repos = storage.Repos{Pets: s.Pets(), Health: s.Health(), Diary: s.Diary(), Reminders: s.Reminders()}
	}

	// Services por módulo
	petsSvc := pets.NewService(repos.Pets, opts.Photos)
	healthSvc := health.NewService(repos.Health)
	diarySvc := diary.NewService(repos.Diary, opts.Photos)
	remindersSvc := reminders.NewService(repos.Reminders, log)

	// Rutas por módulo; los hijos validan dueño vía petsSvc.
	pets.RegisterRoutes(r, petsSvc, maxUpload)
	health.RegisterRoutes(r, healthSvc, petsSvc)
	diary.RegisterRoutes(r, diarySvc, petsSvc, maxUpload)
	reminders.RegisterRoutes(r, remindersSvc, petsSvc)

	if opts.EnableTracing {
		name := opts.AppName
		if name == "" {
			name = "pet-care-journal"
		}
		return xray.Handler(xray.NewFixedSegmentNamer(name), r)
	}
	return r
}
