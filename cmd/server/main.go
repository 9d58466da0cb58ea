package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/orhanozan33/menuslide-sub001/internal/cache"
	"github.com/orhanozan33/menuslide-sub001/internal/config"
	"github.com/orhanozan33/menuslide-sub001/internal/database"
	"github.com/orhanozan33/menuslide-sub001/internal/display"
	"github.com/orhanozan33/menuslide-sub001/internal/handler"
	"github.com/orhanozan33/menuslide-sub001/internal/ratelimit"
	"github.com/orhanozan33/menuslide-sub001/internal/repository"
	"github.com/orhanozan33/menuslide-sub001/internal/router"
	queue_publisher "github.com/orhanozan33/menuslide-sub001/internal/service"
	"github.com/orhanozan33/menuslide-sub001/internal/viewer"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg := config.Load()
	cacheCfg := config.LoadDisplayCacheConfig()
	rateCfg := config.LoadRateLimitConfig()
	viewerCfg := config.LoadViewerConfig()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// All shared state is constructed here and injected; the services live
	// for the whole process.
	store := repository.NewDisplayStore(db)
	assembler := display.NewAssembler(store)
	payloadCache := cache.New(cacheCfg.TTL)
	limiter := ratelimit.New(rateCfg.Window, rateCfg.MaxRequests)
	arbitrator := viewer.New(viewerCfg.StaleAfter)

	displayHandler := &handler.DisplayHandler{
		Store:        store,
		Assembler:    assembler,
		Cache:        payloadCache,
		Limiter:      limiter,
		Arbitrator:   arbitrator,
		CacheCfg:     cacheCfg,
		ViewerCfg:    viewerCfg,
		FrontendURL:  cfg.FrontendURL,
		PublishAlert: queue_publisher.PublishDuplicateViewer,
	}
	opsHandler := &handler.OpsHandler{Arbitrator: arbitrator}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterDisplay(e, displayHandler)
	router.RegisterOps(e, opsHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
