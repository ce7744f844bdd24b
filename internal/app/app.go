package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dorisurararara-crypto/auto-blog/internal/config"
	"github.com/dorisurararara-crypto/auto-blog/internal/infrastructure/affiliate"
	"github.com/dorisurararara-crypto/auto-blog/internal/infrastructure/deploy"
	"github.com/dorisurararara-crypto/auto-blog/internal/infrastructure/image"
	"github.com/dorisurararara-crypto/auto-blog/internal/infrastructure/llm"
	"github.com/dorisurararara-crypto/auto-blog/internal/infrastructure/scheduler"
	"github.com/dorisurararara-crypto/auto-blog/internal/infrastructure/source"
	"github.com/dorisurararara-crypto/auto-blog/internal/infrastructure/storage"
	"github.com/dorisurararara-crypto/auto-blog/internal/infrastructure/trends"
	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
	"github.com/dorisurararara-crypto/auto-blog/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	ledger   *storage.Ledger
}

// New builds a runnable application instance. Missing required
// credentials are the only fatal configuration errors; optional
// stages (ranking, trends, images, affiliate, deploy) degrade when
// unconfigured.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if cfg.Generator.APIKey == "" {
		return nil, fmt.Errorf("generator api key is required")
	}

	ledger, err := storage.OpenLedger(cfg.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	sink, err := buildSink(cfg.Sink)
	if err != nil {
		_ = ledger.Close()
		return nil, err
	}

	var ranker ports.TopicRanker
	if cfg.Ranker.APIKey != "" {
		r, err := llm.NewRanker(cfg.Ranker, baseLogger.With("component", "ranker"))
		if err != nil {
			_ = ledger.Close()
			return nil, fmt.Errorf("build ranker: %w", err)
		}
		ranker = r
	} else {
		baseLogger.Warn("ranker api key missing, first candidate will always win")
	}

	var trendSearcher ports.TrendSearcher
	if cfg.Trends.APIKey != "" && cfg.Trends.CX != "" {
		trendSearcher = trends.NewSearcher(cfg.Trends, baseLogger.With("component", "trends"))
	}

	var affiliateSearcher ports.AffiliateSearcher
	if cfg.Affiliate.AccessKey != "" && cfg.Affiliate.SecretKey != "" {
		affiliateSearcher = affiliate.NewClient(cfg.Affiliate, baseLogger.With("component", "affiliate"))
	}

	var imageSynth ports.ImageSynthesizer
	if cfg.Image.Endpoint != "" {
		imageSynth = image.NewClient(cfg.Image.Endpoint)
	}

	var deployer ports.Deployer
	if cfg.Deploy.Enabled {
		deployer = deploy.NewGitDeployer(cfg.Deploy.WorkDir, cfg.Deploy.Branch, baseLogger.With("component", "deploy"))
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:         source.NewFeedSource(nil, baseLogger.With("component", "source")),
		Ranker:         ranker,
		Trends:         trendSearcher,
		Generator:      llm.NewGenerator(cfg.Generator),
		Image:          imageSynth,
		Affiliate:      affiliateSearcher,
		Ledger:         ledger,
		Sink:           sink,
		Deployer:       deployer,
		Logger:         baseLogger.With("component", "pipeline"),
		Categories:     cfg.Pipeline.Categories,
		CandidateLimit: cfg.Pipeline.CandidateLimit,
		AffiliateLimit: cfg.Pipeline.AffiliateLimit,
		Cooldown:       cfg.Pipeline.Cooldown(),
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline, ledger: ledger}, nil
}

func buildSink(cfg config.SinkConfig) (ports.ContentSink, error) {
	switch cfg.Kind {
	case "", "file":
		return storage.NewFileSink(cfg.ContentDir), nil
	case "postgres":
		db, err := storage.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("build postgres sink: %w", err)
		}
		return storage.NewPostgresSink(db), nil
	default:
		return nil, fmt.Errorf("unknown sink kind %q", cfg.Kind)
	}
}

// Run executes the pipeline once when no cron expression is
// configured, otherwise keeps running on schedule until ctx is
// cancelled.
func (a *Application) Run(ctx context.Context) error {
	defer a.ledger.Close()

	spec := a.cfg.Scheduler.CronExpression
	if spec == "" {
		return a.pipeline.Run(ctx, time.Now().In(a.cfg.Scheduler.Location()))
	}

	driver := scheduler.NewCronScheduler(spec, a.cfg.Scheduler.Location())
	sched := usecase.NewScheduler(driver, a.pipeline)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}
