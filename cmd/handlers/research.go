package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"scout/internal/classify"
	"scout/internal/config"
	"scout/internal/fetch"
	"scout/internal/llm"
	"scout/internal/logger"
	"scout/internal/report"
	"scout/internal/research"
	"scout/internal/search"
)

// NewResearchCmd creates the research command
func NewResearchCmd() *cobra.Command {
	var (
		numSources int
		outputDir  string
		profile    string
		provider   string
		backend    string
		model      string
		language   string
		pause      time.Duration
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "research [topic]",
		Short: "Research a topic and generate a report",
		Long: `Research searches the web for a topic, scrapes the most promising
text sources, analyzes each with a language model, and writes the
assembled report to the output directory.

Examples:
  scout research "solid state batteries"
  scout research "CRISPR delivery methods" --profile academic --sources 5
  scout research "rust async runtimes" --provider serpapi --backend gemini`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResearch(cmd.Context(), args[0], researchOptions{
				numSources: numSources,
				outputDir:  outputDir,
				profile:    profile,
				provider:   provider,
				backend:    backend,
				model:      model,
				language:   language,
				pause:      pause,
				dryRun:     dryRun,
			})
		},
	}

	cmd.Flags().IntVarP(&numSources, "sources", "n", 0, "Number of sources to analyze (default from config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for report artifacts (default from config)")
	cmd.Flags().StringVar(&profile, "profile", "", "Classification profile: general, academic")
	cmd.Flags().StringVar(&provider, "provider", "", "Search provider: google, serpapi (default from config)")
	cmd.Flags().StringVar(&backend, "backend", "", "AI backend: ollama, gemini (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "Preferred model, tried after the default chain")
	cmd.Flags().StringVar(&language, "language", "", "Search language code (default from config)")
	cmd.Flags().DurationVar(&pause, "pause", -1, "Courtesy pause between source fetches (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report without writing artifacts")

	return cmd
}

type researchOptions struct {
	numSources int
	outputDir  string
	profile    string
	provider   string
	backend    string
	model      string
	language   string
	pause      time.Duration
	dryRun     bool
}

func runResearch(ctx context.Context, topic string, opts researchOptions) error {
	cfg := config.Get()

	searcher, err := buildSearchProvider(cfg, opts.provider)
	if err != nil {
		return fmt.Errorf("search provider: %w", err)
	}

	filter, err := buildURLFilter(cfg, opts.profile)
	if err != nil {
		return err
	}

	gen, err := buildGenerator(ctx, cfg, opts.backend)
	if err != nil {
		return fmt.Errorf("AI backend: %w", err)
	}

	models := cfg.AI.Models
	if len(models) == 0 {
		models = llm.DefaultModels
	}
	invoker := llm.NewInvoker(gen, models, opts.model)

	scraper := fetch.NewScraper(nil, fetch.NewFetcher())

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}
	var writer *report.Writer
	if !opts.dryRun {
		writer = report.NewWriter(outputDir)
	}

	numSources := opts.numSources
	if numSources <= 0 {
		numSources = cfg.Research.NumSources
	}
	language := opts.language
	if language == "" {
		language = cfg.Research.Language
	}
	pause := opts.pause
	if pause < 0 {
		pause = config.ResearchPause()
	}

	researcher := research.NewResearcher(searcher, filter, scraper, invoker, writer, research.Options{
		NumSources: numSources,
		Pause:      pause,
		Language:   language,
	})

	rep, err := researcher.Run(ctx, topic)
	if rep == nil {
		return err
	}
	if err != nil {
		// The report was assembled but writing artifacts failed.
		logger.Error("failed to write report artifacts", err)
	}

	if opts.dryRun {
		fmt.Println(rep.Text)
		return nil
	}

	fmt.Printf("Report generated from %d sources\n", len(rep.Sources))
	fmt.Printf("Artifacts written to %s/\n", outputDir)
	return err
}

func buildSearchProvider(cfg *config.Config, override string) (search.Provider, error) {
	providerName := override
	if providerName == "" {
		providerName = cfg.Search.DefaultProvider
	}
	return search.NewProvider(
		search.ProviderType(providerName),
		config.GetSearchProviderConfig(providerName),
	)
}

func buildURLFilter(cfg *config.Config, override string) (research.URLFilter, error) {
	profileName := override
	if profileName == "" {
		profileName = cfg.Research.Profile
	}
	base := classify.NewClassifier()
	switch profileName {
	case "", "general":
		return base, nil
	case "academic":
		return classify.AcademicProfile(base), nil
	default:
		return nil, fmt.Errorf("unknown profile: %s (supported: general, academic)", profileName)
	}
}

func buildGenerator(ctx context.Context, cfg *config.Config, override string) (llm.Generator, error) {
	backendName := override
	if backendName == "" {
		backendName = cfg.AI.Backend
	}
	switch backendName {
	case "", "ollama":
		return llm.NewOllamaClient(cfg.AI.Ollama.URL), nil
	case "gemini":
		client, err := llm.NewGeminiClient(ctx)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s (supported: ollama, gemini)", backendName)
	}
}
