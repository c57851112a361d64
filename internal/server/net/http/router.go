// Package http реализует маршрутизацию HTTP-слоя сервера contactbook.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - общую цепочку middleware (request id, логирование, recover, метрики, заголовки безопасности);
//   - проверку JWT access-токенов на защищённых маршрутах.
package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/unrolled/secure"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/api"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/middleware"
	_ "github.com/IvanChernomyrdin/go-contactbook/swagger/docs"
)

// Options - необязательные части роутера.
type Options struct {
	// TrustProxy включает chi RealIP (X-Forwarded-For / X-Real-IP).
	TrustProxy bool
	// SecureHeaders включает unrolled/secure.
	SecureHeaders bool
	// HSTSSeconds > 0 добавляет Strict-Transport-Security (имеет смысл только с TLS).
	HSTSSeconds int64
	// Development отключает HSTS и прочие проверки secure для локального запуска.
	Development bool

	Metrics     *middleware.Metrics
	MetricsPath string

	// PprofPrefix != "" монтирует net/http/pprof под этим префиксом.
	PprofPrefix string
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - GET /health и swagger UI;
//   - публичные эндпоинты аутентификации под префиксом /api/auth;
//   - группу защищённых JWT эндпоинтов /api/contacts.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	if opts.SecureHeaders {
		r.Use(secureHeaders(opts).Handler)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusNotFound, errNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
	})

	r.Get("/health", h.Health)
	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, opts.Metrics.Handler())
	}
	if opts.PprofPrefix != "" {
		r.Mount(strings.TrimRight(opts.PprofPrefix, "/"), chimw.Profiler())
	}

	r.Route("/api", func(r chi.Router) {
		// Публичные пути
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})
		// защищённые пути
		r.Group(func(r chi.Router) {
			// проверка access токена
			r.Use(h.Verifier.AuthMiddleware())
			r.Route("/contacts", func(r chi.Router) {
				r.Post("/", h.CreateContact)
				r.Get("/", h.ListContacts)
				r.Get("/{id}", h.GetContact)
				r.Patch("/{id}", h.UpdateContact)
				r.Delete("/{id}", h.DeleteContact)
			})
		})
	})

	return r
}

func secureHeaders(opts Options) *secure.Secure {
	return secure.New(secure.Options{
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "no-referrer",
		STSSeconds:           opts.HSTSSeconds,
		STSIncludeSubdomains: opts.HSTSSeconds > 0,
		IsDevelopment:        opts.Development,
	})
}
