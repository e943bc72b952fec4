package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/CameronDeb/meta-aria-2/internal/config"
	"github.com/CameronDeb/meta-aria-2/internal/database"
	"github.com/CameronDeb/meta-aria-2/internal/loader"
	logger "github.com/CameronDeb/meta-aria-2/internal/logging"
	"github.com/CameronDeb/meta-aria-2/internal/metrics"
	"github.com/CameronDeb/meta-aria-2/internal/models"
	"github.com/CameronDeb/meta-aria-2/internal/pipeline"
	"github.com/CameronDeb/meta-aria-2/internal/report"
	"github.com/CameronDeb/meta-aria-2/internal/router"
)

func main() {
	sessionDir := pflag.String("session", "", "analyze one extracted session directory")
	batchDir := pflag.String("batch", "", "analyze every session directory under this root")
	outputDir := pflag.String("output", "reports", "directory for generated reports")
	companionDir := pflag.String("companion", "", "directory holding the perception CSVs (defaults to the session directory)")
	simulate := pflag.Bool("simulate", false, "analyze a simulated session instead of recorded data")
	seed := pflag.Int64("seed", 0, "random seed for simulated data (0 uses the clock)")
	serve := pflag.Bool("serve", false, "serve generated reports over HTTP")
	pflag.Parse()

	// Local .env is optional; real deployments use the environment.
	_ = godotenv.Load()

	// A plain console logger covers startup until the configured one exists.
	bootLog, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize bootstrap logger: " + err.Error())
	}
	if err := config.Init(".", bootLog); err != nil {
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	logConf := config.Conf.Logging
	log, err := logger.Init(logConf.Directory, logger.Rotation{
		MaxSizeMB:  logConf.MaxSize,
		MaxBackups: logConf.MaxBackups,
		MaxAgeDays: logConf.MaxAge,
		Compress:   logConf.Compress,
	})
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	if config.Conf.Database.Enabled {
		if err := database.Init(log); err != nil {
			log.Fatal("Failed to initialize metrics store", zap.Error(err))
		}
	}

	if *serve {
		r := router.Setup(log, *outputDir)
		port := ":" + config.Conf.Server.Port
		log.Info("Report server listening on http://localhost" + port)
		if err := r.Run(port); err != nil {
			log.Fatal("Failed to run report server", zap.Error(err))
		}
		return
	}

	table := loadBenchmarks(log)
	rng := rand.New(rand.NewSource(seedValue(*seed)))
	calculator := metrics.NewCalculator(log, table, rng)
	opts := loader.Options{
		MaxFrames:     config.Conf.Analysis.MaxSampledFrames,
		MaxIMUSamples: config.Conf.Analysis.MaxIMUSamples,
	}
	pipe := pipeline.New(log, calculator, opts)
	pipe.Persist = config.Conf.Database.Enabled
	pipe.CompanionDir = *companionDir

	switch {
	case *simulate:
		runSimulated(log, calculator, rng, opts, *outputDir)
	case *sessionDir != "":
		if _, err := pipe.ProcessSession(*sessionDir, *outputDir); err != nil {
			log.Fatal("Session analysis failed", zap.Error(err))
		}
	case *batchDir != "":
		if _, err := pipe.ProcessBatch(*batchDir, *outputDir); err != nil {
			log.Fatal("Batch analysis failed", zap.Error(err))
		}
	default:
		pflag.Usage()
		os.Exit(2)
	}
}

func seedValue(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func loadBenchmarks(log *zap.Logger) *models.BenchmarkTable {
	path := config.Conf.Analysis.BenchmarksFile
	if path == "" {
		return models.DefaultBenchmarkTable()
	}
	table, err := models.LoadBenchmarkTable(path)
	if err != nil {
		log.Fatal("Failed to load benchmark table", zap.String("path", path), zap.Error(err))
	}
	return table
}

// runSimulated analyzes a generated session. It exercises the full
// pipeline without a headset recording.
func runSimulated(log *zap.Logger, calculator *metrics.Calculator, rng *rand.Rand, opts loader.Options, outputDir string) {
	log.Info("Analyzing simulated session")

	session := loader.SimulatedSession(rng, opts)
	result := calculator.ComputeSessionMetrics(session)
	recs := calculator.Recommendations(result)

	gen := report.NewGenerator(log)
	reportPath, err := gen.Generate("simulated", session, result, recs, filepath.Join(outputDir, "simulated"))
	if err != nil {
		log.Fatal("Failed to generate simulated report", zap.Error(err))
	}
	log.Info("Simulated session analyzed",
		zap.Float64("overall_score", result.Performance.OverallScore),
		zap.String("report", reportPath),
	)
}
