// file: cli/serve.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"civil-quest-admin/config"
	"civil-quest-admin/controllers"
	"civil-quest-admin/i18n"
	"civil-quest-admin/listview"
	"civil-quest-admin/logger"
	"civil-quest-admin/metrics"
	"civil-quest-admin/middleware"
	"civil-quest-admin/services"
	"civil-quest-admin/submission"
	"civil-quest-admin/websocket"
)

const sessionName = "civilquest_session"

type serveOptions struct {
	templates string
	static    string
}

func (o *serveOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.templates, "templates", "templates/*.html", "glob of the HTML templates")
	cmd.Flags().StringVar(&o.static, "static", "static", "directory served under /static")
}

func serveCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

// app is the wired dashboard: the router plus the background workers it needs.
type app struct {
	router *gin.Engine
	hub    *websocket.Hub
	lists  *listview.Registry
}

func runServe(parent context.Context, opts *serveOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.InitLogger(cfg.LogDir); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetLogLevel(cfg.Env)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, metricsPublisher(cfg))
	if err != nil {
		return err
	}
	a.router.LoadHTMLGlob(opts.templates)
	a.router.Static("/static", opts.static)

	go a.hub.Run(ctx)
	a.lists.StartJanitor(ctx, cfg.CollectionTTL/2)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info.Printf("[serve] listening on %s (env=%s, api=%s)", cfg.ListenAddr, cfg.Env, cfg.APIBaseURL)

	select {
	case <-ctx.Done():
		logger.Info.Println("[serve] shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func metricsPublisher(cfg *config.Config) metrics.Publisher {
	if !cfg.MetricsEnabled {
		return metrics.NoopPublisher{}
	}
	cw, err := metrics.NewCloudWatch(cfg.MetricsNS)
	if err != nil {
		logger.Error.Printf("[serve] CloudWatch unavailable, metrics disabled: %v", err)
		return metrics.NoopPublisher{}
	}
	return cw
}

// newApp wires services, controllers and middleware. Templates and static
// files are left to the caller.
func newApp(cfg *config.Config, pub metrics.Publisher) (*app, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var clientOpts []services.Option
	if cfg.TracingEnabled {
		clientOpts = append(clientOpts, services.WithTracing())
	}
	api := services.NewClient(cfg.APIBaseURL, cfg.APITimeout, clientOpts...)
	geo := services.NewClient(cfg.GeocodeURL, cfg.APITimeout,
		append(clientOpts, services.WithUserAgent("civilquest-admin/"+Version+" (+"+cfg.ApplicationURL+")"))...)

	hub := websocket.NewHub(cfg.ApplicationURL)
	hub.OnConnectionCount(pub.DashboardConnections)
	lists := listview.NewRegistry(cfg.CollectionTTL, hub, metrics.NewRecorder(pub))

	tr := i18n.NewTranslator(cfg.DefaultLocale)
	page := controllers.NewPage(tr, submission.NewGuard(), lists, cfg.DefaultLocale)
	events := services.NewEventService(api)

	router := gin.New()
	router.SetFuncMap(controllers.FuncMap(tr))
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID(), middleware.SecurityHeaders())
	if cfg.TracingEnabled {
		router.Use(middleware.Tracing("civilquest-admin"))
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.SessionSecure,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(sessionName, store))
	router.Use(middleware.Locale(tr.Supported))

	controllers.RegisterRoutes(router, controllers.Controllers{
		Auth:         controllers.NewAuthController(page, services.NewAuthService(api)),
		Dashboard:    controllers.NewDashboardController(page, services.NewAnalyticsService(api)),
		Events:       controllers.NewEventController(page, events, cfg.MobileDeepLink),
		Admins:       controllers.NewAdminController(page, services.NewAdminService(api)),
		Operators:    controllers.NewOperatorController(page, services.NewOperatorService(api)),
		Sponsorships: controllers.NewSponsorshipController(page, services.NewSponsorshipService(api), events),
		Premium:      controllers.NewPremiumController(page, services.NewPremiumService(api)),
		Points:       controllers.NewPointsController(page, services.NewPointsService(api)),
		Users:        controllers.NewUserController(page, services.NewUserService(api)),
		Audit:        controllers.NewAuditController(page, services.NewAuditService(api)),
		API:          controllers.NewAPIController(page, services.NewGeocoder(geo), hub),
	})

	return &app{router: router, hub: hub, lists: lists}, nil
}
