package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dmaslov/applicant-screener/internal/ai/gemini"
	"github.com/dmaslov/applicant-screener/internal/logger"
	"github.com/dmaslov/applicant-screener/internal/pipeline"
	"github.com/dmaslov/applicant-screener/internal/secrets"
	"github.com/dmaslov/applicant-screener/internal/slotpool"
)

const (
	defaultSlotCount     = 30
	defaultSlotStartDate = "2025-10-05"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one application through the screening pipeline",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("profile-file", "p", "", "file with the applicant profile text")
	runCmd.Flags().StringP("cover-letter-file", "c", "", "file with the applicant cover letter text")

	viper.BindPFlag("applicant.profile-file", runCmd.Flags().Lookup("profile-file"))
	viper.BindPFlag("applicant.cover-letter-file", runCmd.Flags().Lookup("cover-letter-file"))
}

// run is the main command for the cli.
func run() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	logger.Info("starting the applicant-screener", zap.String("version", version))

	apiKey, err := resolveAPIKey(config)
	if err != nil {
		logger.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	var geminiCfg GeminiConfig
	if config.AI != nil && config.AI.Gemini != nil {
		geminiCfg = *config.AI.Gemini
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model)
	if err != nil {
		logger.Fatal("creating the gemini generator", zap.Error(err))
	}

	screener := gemini.NewScreener(generator, logger, geminiCfg.MaxRetries, geminiCfg.MaxLogLength)

	pool := slotpool.New()
	seedPool(pool, config.Slots, logger)

	profile, coverLetter, err := loadApplicant(config)
	if err != nil {
		logger.Fatal("loading the applicant input", zap.Error(err))
	}

	pipe := pipeline.New(pipeline.Deps{
		Logger:      logger,
		Eligibility: screener,
		TechFit:     screener.TechFit(),
		SalesFit:    screener.SalesFit(),
		Cultural:    screener.Cultural(),
		Assembler:   screener,
		Composer:    screener,
		Pool:        pool,
	})

	final := pipe.Run(ctx, pipeline.NewRecord(profile, coverLetter))

	logger.Info("screening finished",
		zap.String("eligibility", outcomeLabel(final.Eligibility)),
		zap.String("role_category", string(final.Category)),
		zap.Int("slots_left", pool.Len()),
	)

	fmt.Println(final.Notification)
}

func resolveAPIKey(config *Config) (string, error) {
	src := secrets.Source{Name: "gemini api key"}

	if config.AI != nil && config.AI.Gemini != nil {
		src.Value = config.AI.Gemini.APIKey
		src.File = config.AI.Gemini.APIKeyFile
	}
	if strings.TrimSpace(src.Value) == "" {
		src.Value = viper.GetString("ai.gemini.api-key")
	}

	return secrets.Load(src)
}

func seedPool(pool *slotpool.Pool, cfg *SlotsConfig, logger *zap.Logger) {
	count := defaultSlotCount
	start := defaultSlotStartDate
	var seed int64

	if cfg != nil {
		if cfg.Count > 0 {
			count = cfg.Count
		}
		if cfg.StartDate != "" {
			start = cfg.StartDate
		}
		seed = cfg.Seed
	}

	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		logger.Fatal("parsing slot start date", zap.String("start_date", start), zap.Error(err))
	}

	var r *rand.Rand
	if seed != 0 {
		r = rand.New(rand.NewSource(seed))
	}
	slotpool.Generate(pool, count, startDate, r)

	logger.Info("interview slot pool seeded",
		zap.Int("slots", pool.Len()),
		zap.String("start_date", start),
	)
}

// loadApplicant reads the profile and cover letter from the configured files,
// falling back to an interactive choice among the bundled samples.
func loadApplicant(config *Config) (string, string, error) {
	profileFile := viper.GetString("applicant.profile-file")
	coverFile := viper.GetString("applicant.cover-letter-file")
	if config.Applicant != nil {
		if profileFile == "" {
			profileFile = config.Applicant.ProfileFile
		}
		if coverFile == "" {
			coverFile = config.Applicant.CoverLetterFile
		}
	}

	if profileFile != "" || coverFile != "" {
		if profileFile == "" || coverFile == "" {
			return "", "", errors.New("both profile-file and cover-letter-file are required")
		}

		profile, err := os.ReadFile(profileFile)
		if err != nil {
			return "", "", fmt.Errorf("reading profile: %w", err)
		}
		coverLetter, err := os.ReadFile(coverFile)
		if err != nil {
			return "", "", fmt.Errorf("reading cover letter: %w", err)
		}

		return strings.TrimSpace(string(profile)), strings.TrimSpace(string(coverLetter)), nil
	}

	labels := make([]string, 0, len(sampleApplicants))
	for _, s := range sampleApplicants {
		labels = append(labels, s.Label)
	}

	prompt := promptui.Select{
		Label: "Choose a sample applicant",
		Items: labels,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", "", err
	}

	sample := sampleApplicants[idx]
	return sample.Profile, sample.CoverLetter, nil
}

func outcomeLabel(o pipeline.Outcome) string {
	switch o.Status {
	case pipeline.StatusPositive:
		return "positive"
	case pipeline.StatusNegative:
		return "negative"
	default:
		return "unset"
	}
}
