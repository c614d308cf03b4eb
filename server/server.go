package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	siteadmin "github.com/openstead/siteadmin"
	"github.com/openstead/siteadmin/middleware"
	"github.com/openstead/siteadmin/session"
	"github.com/openstead/siteadmin/upstream"
)

// Server holds the wired components for the admin backend.
type Server struct {
	cfg   *siteadmin.Config
	log   zerolog.Logger
	store session.Store
	codec *session.CookieCodec

	sites *upstream.SiteService
	ideas *upstream.IdeaService
	users *upstream.UserService
}

// New wires a Server from configuration and a session store. The store is
// injected so tests and single-node deployments can use the memory backend.
func New(cfg *siteadmin.Config, store session.Store, log zerolog.Logger) *Server {
	apiClient := upstream.NewClient(cfg.Upstream.APIBaseURL, cfg.Upstream.Timeout, log)
	userClient := upstream.NewClient(cfg.Upstream.UserAPIBaseURL, cfg.Upstream.Timeout, log)

	return &Server{
		cfg:   cfg,
		log:   log,
		store: store,
		codec: session.NewCookieCodec(
			cfg.Session.CookieName,
			cfg.Session.CookieSecret,
			cfg.Session.CookieTTL,
			cfg.Session.CookieSecure,
		),
		sites: upstream.NewSiteService(apiClient),
		ideas: upstream.NewIdeaService(apiClient),
		users: upstream.NewUserService(userClient),
	}
}

// Handler builds the router. Pipeline order is fixed: session restore, then
// the one-time-token gate, then (under /admin) authentication, user
// resolution, role enforcement, and per-route tenant enrichment.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(s.log))
	r.Use(middleware.Restore(s.store, s.codec, s.cfg.Session.CookieTTL, s.log))
	r.Use(middleware.Gate(s.store, s.cfg.Session.CookieTTL, s.log))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/oauth/login", s.handleOAuthLogin)
	r.Get("/logout", s.handleLogout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuthenticated(s.cfg.Upstream.APIBaseURL))
		r.Use(middleware.WithUser(s.users, s.log))
		r.Use(middleware.RequireRole("admin"))

		r.With(middleware.WithSites(s.sites, s.log)).Get("/", s.handleSites)

		r.Get("/users", s.handleUsers)
		r.Get("/api/users", s.handleUsers)
		r.Post("/user", s.handleUserCreate)
		r.Get("/user/{userID}", s.handleUserDetail)
		r.Post("/user/{userID}", s.handleUserUpdate)
		r.Post("/user/{userID}/delete", s.handleUserDelete)

		r.With(middleware.WithSites(s.sites, s.log)).Post("/site", s.handleSiteCreate)

		r.Route("/site/{siteID}", func(r chi.Router) {
			r.Use(middleware.WithSite(s.sites, s.store, s.cfg.Server.AppURL, s.log))

			r.Get("/", s.handleSiteDetail)
			r.Post("/", s.handleSiteUpdate)
			r.Post("/delete", s.handleSiteDelete)

			r.Get("/ideas", s.handleIdeas)
			r.Get("/idea/{ideaID}", s.handleIdeaDetail)
			r.Post("/idea", s.handleIdeaCreate)
			r.Post("/idea/{ideaID}", s.handleIdeaUpdate)
			r.Post("/idea/{ideaID}/delete", s.handleIdeaDelete)
		})
	})

	return r
}

// Run serves until ctx is canceled, then drains with the configured grace
// period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Server.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("inbound http-request")
		})
	}
}
