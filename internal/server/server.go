package server

import (
	"context"
	"log"
	"time"

	"github.com/dreasss/kiosk-enterprise-navigator/internal/admin"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/auth"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/catalog"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/config"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/connectivity"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/display"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/idle"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/poi"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/route"
	"github.com/dreasss/kiosk-enterprise-navigator/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

// DefaultKioskID names the single kiosk this process serves. The engine is
// not multi-kiosk; the id exists so the websocket channel has a stable name.
const DefaultKioskID = "kiosk"

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	Redis    *redis.Client
	Store    *catalog.Store
	Hub      *stream.Hub
	Display  *display.Stream
	Registry *poi.Registry
	Route    *route.Service
	Idle     *idle.Controller
	Monitor  *connectivity.Monitor
}

func NewServer(cfg config.Config, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	store := catalog.NewStore(redisClient)
	hub := stream.NewHub(redisClient)
	disp := display.NewStream(hub, DefaultKioskID)
	registry := poi.NewRegistry(store, disp)

	origin := route.Endpoint{
		Name:   "Киоск",
		Coords: [2]float64{cfg.KioskLat, cfg.KioskLng},
	}
	routeSvc := route.NewService(
		route.NewHTTPProvider(cfg.RouterBaseURL),
		store, disp, disp, origin, cfg.MapsBaseURL,
		time.Duration(cfg.RouteTimeoutSec)*time.Second,
	)

	idleCtrl := idle.NewController(nil,
		time.Duration(cfg.IdleTimeoutMs)*time.Millisecond, disp,
		func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := store.BumpVisitors(ctx, time.Now()); err != nil {
				log.Printf("visit counter bump error: %v", err)
			}
		})

	idleCtrl.SetOnActivity(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := store.TouchActivity(ctx, time.Now()); err != nil {
			log.Printf("activity stamp error: %v", err)
		}
	})

	monitor := connectivity.NewMonitor()
	monitor.OnChange(disp.Banner)

	registry.SetOnSelect(func(p poi.PointOfInterest) {
		disp.Selected(poi.Marker(p))
	})

	hub.SetEventHandler(func(_ string, ev stream.Event) {
		switch ev.Type {
		case stream.EventActivity:
			idleCtrl.Activity(ev.Kind)
		case stream.EventNavigate:
			idleCtrl.RouteChanged(ev.Path)
		case stream.EventConnectivity:
			if ev.Online != nil {
				monitor.SetOnline(*ev.Online)
			}
		case stream.EventSelect:
			registry.Select(ev.POIID)
		}
	})

	s := &Server{
		App:      app,
		Cfg:      cfg,
		Redis:    redisClient,
		Store:    store,
		Hub:      hub,
		Display:  disp,
		Registry: registry,
		Route:    routeSvc,
		Idle:     idleCtrl,
		Monitor:  monitor,
	}

	s.initState()
	registerRoutes(s)
	return s
}

// initState loads the catalog projection and bootstraps the admin credential.
// Both fail soft: the kiosk comes up with defaults even with the store down.
func (s *Server) initState() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.Registry.Load(ctx)

	authSvc := auth.NewService(s.Cfg.JWTSecret, s.Store)
	if err := authSvc.EnsureCredential(ctx, s.Cfg.AdminPassword); err != nil {
		log.Printf("admin credential bootstrap error: %v", err)
	}
}

// Shutdown releases the engine's background resources.
func (s *Server) Shutdown() {
	s.Idle.Stop()
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "online": s.Monitor.Online()})
	})

	s.App.Get("/connectivity", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"online": s.Monitor.Online()})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.Store))
	poi.RegisterRoutes(s.App.Group("/pois"), s.Registry, s.Cfg.KioskLat, s.Cfg.KioskLng)
	route.RegisterRoutes(s.App.Group("/route"), s.Route, s.Registry)
	idle.RegisterRoutes(s.App.Group("/session"), s.Idle, time.Duration(s.Cfg.IdleTimeoutMs)*time.Millisecond)
	admin.RegisterRoutes(s.App.Group("/admin"), s.Registry, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Hub)
}
