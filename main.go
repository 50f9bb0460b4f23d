package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/audrbs1579/STT-site/config"
	"github.com/audrbs1579/STT-site/handlers"
	"github.com/audrbs1579/STT-site/internal/media"
	"github.com/audrbs1579/STT-site/internal/speech"
	"github.com/audrbs1579/STT-site/internal/storage"
	"github.com/audrbs1579/STT-site/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	config.InitLogger(cfg.LogLevel)

	supaClient, err := config.NewSupabaseClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	if err != nil {
		config.Log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	speechClient := speech.NewClient(speech.Config{
		Endpoint:     speech.EndpointForRegion(cfg.Speech.Region),
		Key:          cfg.Speech.Key,
		Locale:       cfg.Speech.Locale,
		PollInterval: cfg.Speech.PollInterval,
		MaxPolls:     cfg.Speech.MaxPolls,
	}, config.Log)

	h := handlers.NewApplicationHandler(
		speechClient,
		media.NewConverter(config.Log),
		storage.NewAudioStore(supaClient, cfg.Supabase.Bucket),
		storage.NewAnalysisStore(supaClient),
		config.Log,
		cfg.SignedURLExpiry,
	)

	app := fiber.New(fiber.Config{
		BodyLimit: 200 * 1024 * 1024, // long recordings are fine, whole-disk uploads are not
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(config.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "STT site backend is healthy",
		})
	})

	apiV1 := app.Group("/api/v1")
	apiV1.Post("/analyses", h.CreateAnalysis)
	apiV1.Get("/analyses", h.ListAnalyses)
	apiV1.Get("/analyses/:id", h.GetAnalysis)

	// Thin presentation layer; everything it shows comes from the API above.
	app.Static("/", "./web")

	config.Log.Infof("Starting STT site backend on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
