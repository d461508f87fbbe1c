package main

import (
	"context"
	"flag"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/barkeep/shaker/internal/config"
	"github.com/barkeep/shaker/internal/infrastructure/database"
	"github.com/barkeep/shaker/internal/infrastructure/repository"
	"github.com/barkeep/shaker/internal/interface/rest"
	"github.com/barkeep/shaker/internal/service"
	"github.com/barkeep/shaker/internal/telemetry"
	"github.com/barkeep/shaker/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if conf.Server.EnableTrace {
		shutdown, err := telemetry.Setup(context.Background(), conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to set up tracing: " + err.Error())
		}
		defer shutdown(context.Background())
		e.Use(otelecho.Middleware("shaker"))
	}

	var events usecase.EventPublisher
	if conf.Server.RedisAddr != "" {
		rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
		events = service.NewSignalService(rdb)
		rest.NewEventsHandler(rdb).RegisterRoutes(e)
	}

	var names usecase.NameIndex
	if conf.Server.MemcachedAddr != "" {
		names = service.NewNameService(database.NewMemcached(conf.Server.MemcachedAddr))
	} else {
		names = service.NewNameService(nil)
	}

	cocktailRepo := repository.NewCocktailRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)

	cocktailUC := usecase.NewCocktailUsecase(cocktailRepo, ingredientRepo, events, names)
	ingredientUC := usecase.NewIngredientUsecase(ingredientRepo, events, names)

	handler := rest.NewHandler(cocktailUC, ingredientUC)
	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.ListenAddr))
}
