package wire

import (
	"net/http"
	"strings"

	"crime-report/internal/adaptor"
	"crime-report/internal/data/repository"
	"crime-report/internal/usecase"
	"crime-report/pkg/mailer"
	"crime-report/pkg/media"
	"crime-report/pkg/middleware"
	"crime-report/pkg/ratelimit"
	"crime-report/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the infrastructure pieces built from config before wiring.
type Deps struct {
	Repo    *repository.Repository
	Store   media.Store
	Mailer  mailer.Sender
	Limiter ratelimit.Limiter
}

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(deps.Repo, deps.Store, deps.Mailer, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	return &App{
		Router:  setupRouter(handler, deps, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	deps Deps,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP(config.RateLimit.TrustedProxies))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	limited := middleware.RateLimit(deps.Limiter, logger)

	wireAuth(r, handler.Auth, limited)
	wireComplaint(r, handler.Complaint)
	wireSOS(r, handler.SOS, limited)
	if config.App.DebugRoutes {
		wireDebug(r, handler.Debug)
	}
	wireMedia(r, deps.Store, config.Media, logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "Crime Reporting Backend is running", nil)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// wireMedia serves locally stored attachments under the configured prefix.
// Hosted media is served by the provider.
func wireMedia(r chi.Router, store media.Store, config utils.MediaConfig, logger *zap.Logger) {
	local, ok := store.(*media.LocalStore)
	if !ok {
		return
	}

	prefix := "/" + strings.Trim(config.URLPrefix, "/")
	if prefix == "/" {
		prefix = "/uploads"
	}

	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(local.Dir())))
	r.Handle(prefix+"/*", fs)

	logger.Info("Serving local media", zap.String("prefix", prefix), zap.String("dir", local.Dir()))
}
