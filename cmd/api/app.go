package main

import (
	"context"
	"fmt"
	"log"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

// application holds every wired component. Optional backends stay nil when disabled.
type application struct {
	cfg        *config.Config
	pipeline   services.ResumePipeline
	matcher    services.JobMatcher
	aggregator services.BatchAggregator
	resumeRepo repositories.ResumeRepository
	matchRepo  repositories.JobMatchRepository
	index      services.CandidateIndex
}

func newApplication(ctx context.Context, cfg *config.Config, withDatabase bool) (*application, error) {
	app := &application{cfg: cfg}

	if withDatabase && cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		app.resumeRepo = repositories.NewResumeRepository(db)
		app.matchRepo = repositories.NewJobMatchRepository(db)
		log.Println("✅ Repositories initialized successfully")
	}

	var gemini services.GeminiService
	if cfg.Model.GeminiAPIKey != "" {
		g, err := services.NewGeminiService(ctx, services.GeminiOptions{
			APIKey:     cfg.Model.GeminiAPIKey,
			Model:      cfg.Model.GeminiModel,
			EmbedModel: cfg.Model.EmbedModel,
			Timeout:    cfg.Model.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini AI: %w", err)
		}
		gemini = g
		log.Println("✅ Gemini AI initialized successfully")
	}

	var model services.ModelClient
	switch cfg.Model.Provider {
	case "openrouter":
		m, err := services.NewOpenRouterService(services.OpenRouterOptions{
			APIKey:  cfg.Model.OpenRouterAPIKey,
			Model:   cfg.Model.OpenRouterModel,
			BaseURL: cfg.Model.OpenRouterURL,
			Timeout: cfg.Model.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenRouter: %w", err)
		}
		model = m
		log.Println("✅ OpenRouter initialized successfully")
	case "gemini":
		if gemini == nil {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when MODEL_PROVIDER is gemini")
		}
		model = gemini
	default:
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q", cfg.Model.Provider)
	}

	if cfg.Qdrant.URL != "" {
		if gemini == nil {
			log.Println("⚠️ QDRANT_URL is set but GEMINI_API_KEY is not; candidate index disabled")
		} else {
			qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize Qdrant: %w", err)
			}
			if err := qdrantService.InitCollection(ctx); err != nil {
				return nil, fmt.Errorf("failed to initialize Qdrant collection: %w", err)
			}
			app.index = services.NewCandidateIndex(qdrantService, gemini, services.NewTextChunker())
			log.Println("✅ Qdrant initialized successfully")
		}
	}

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		return nil, err
	}

	app.pipeline = services.NewResumePipeline(
		services.NewFileValidator(cfg.Storage.MaxFileSize),
		storageService,
		services.NewTextExtractor(model, services.NewPDFParserService()),
		services.NewResumeParser(model),
	)
	app.matcher = services.NewJobMatcher(model, cfg.Match.Concurrency)
	app.aggregator = services.NewBatchAggregator(model)
	log.Println("✅ Services initialized successfully")

	return app, nil
}
