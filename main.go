package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"huesort/config"
	"huesort/detect"
	"huesort/history"
	"huesort/learn"
	"huesort/mover"
	"huesort/picker"
	"huesort/process"
	"huesort/selection"
	"huesort/stats"
)

var (
	autoMode    bool
	manualMode  bool
	copyMode    bool
	dryRun      bool
	undoLast    bool
	showHistory bool
	configPath  string
	themesDir   string
	appVersion  = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "huesort [path]",
	Short: "huesort – theme-based wallpaper organizer",
	Long: "Huesort sorts images into theme directories by matching each image's\n" +
		"representative color against a fixed palette of named themes.",
	Args:          cobra.MaximumNArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Manage huesort configuration files.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default huesort.json in the standard config location (or at --config-path).",
	RunE:  runConfigGenerate,
}

func init() {
	rootCmd.Version = appVersion
	rootCmd.Flags().BoolVar(&autoMode, "auto", false, "Auto-detect themes from image colors")
	rootCmd.Flags().BoolVar(&manualMode, "manual", false, "Manually select a theme for each image")
	rootCmd.Flags().BoolVar(&copyMode, "copy", false, "Copy images instead of moving them")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without touching any file")
	rootCmd.Flags().BoolVar(&undoLast, "undo", false, "Undo the most recent batch of operations")
	rootCmd.Flags().BoolVar(&showHistory, "history", false, "Show recent operations")
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "Path to config file")
	rootCmd.Flags().StringVar(&themesDir, "themes-dir", "", "Themes root directory (overrides config)")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(configCmd)
}

func run(cmd *cobra.Command, args []string) error {
	if autoMode && manualMode {
		return errors.New("cannot use both --auto and --manual")
	}

	cfgPath, err := resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("themes-dir") {
		cfg.ThemesDir = themesDir
	}

	hist := history.New(cfg.HistoryFile, cfg.MaxHistory)

	if undoLast {
		return runUndo(hist)
	}
	if showHistory {
		return runHistory(hist)
	}

	pal, err := cfg.Palette()
	if err != nil {
		return err
	}

	// Picker availability is fatal before any file is touched.
	fz, err := picker.NewFzf()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	start, err := startPath(args)
	if err != nil {
		return err
	}

	images, err := collectImages(fz, start)
	if err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			fmt.Println("Cancelled.")
			return nil
		}
		return err
	}
	if len(images) == 0 {
		fmt.Println("No images selected.")
		return nil
	}

	mode, err := resolveMode(fz, cfg.DefaultMode)
	if err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			fmt.Println("Cancelled.")
			return nil
		}
		return err
	}

	learner, err := learn.Load(filepath.Join(filepath.Dir(cfgPath), "learned.json"))
	if err != nil {
		log.Warnf("load corrections: %v", err)
		learner = nil
	}

	if dryRun {
		fmt.Println("[DRY RUN - no files will be moved]")
	}
	fmt.Printf("Processing %d image(s)...\n\n", len(images))

	batch := history.NewBatchID(time.Now())
	proc := &process.Processor{
		Sampler: detect.NewSampler(detect.Strategy(cfg.Sampler)),
		Matcher: detect.NewMatcher(pal, cfg.HighCutoff, cfg.MediumCutoff),
		Palette: pal,
		Mover:   mover.New(cfg.ThemesDir, hist, batch, dryRun),
		Learner: learner,
		Picker:  fz,
		Mode:    mode,
		Copy:    copyMode,
		DryRun:  dryRun,
	}

	sum, runErr := proc.Run(ctx, images)

	fmt.Println()
	fmt.Println(process.RenderSummary(sum))
	if len(sum.Results) > 1 {
		fmt.Println(stats.Report(sum.Results))
	}
	if sum.Succeeded > 0 && !dryRun {
		fmt.Println("\nTo undo this batch, run: huesort --undo")
	}

	if runErr != nil {
		if errors.Is(runErr, picker.ErrCancelled) || errors.Is(runErr, context.Canceled) {
			fmt.Println("\nCancelled; remaining files were not touched.")
			return nil
		}
		return runErr
	}
	return nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

func startPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return home, nil
}

// collectImages resolves the positional path to a batch: a single
// supported image file, or a browsing session over a directory.
func collectImages(p picker.Picker, start string) ([]string, error) {
	info, err := os.Stat(start)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", start, err)
	}

	if !info.IsDir() {
		if !selection.IsImage(start) {
			return nil, fmt.Errorf("not a supported image file: %s", start)
		}
		abs, err := filepath.Abs(start)
		if err != nil {
			return nil, err
		}
		return []string{abs}, nil
	}

	browser, err := selection.NewBrowser(p, start)
	if err != nil {
		return nil, err
	}
	fmt.Println("Browse and select images (ESC when done)")
	return browser.Run()
}

func resolveMode(p picker.Picker, configured string) (process.Mode, error) {
	switch {
	case autoMode:
		return process.ModeAuto, nil
	case manualMode:
		return process.ModeManual, nil
	}
	switch configured {
	case string(process.ModeAuto):
		return process.ModeAuto, nil
	case string(process.ModeManual):
		return process.ModeManual, nil
	}

	choice, err := p.Pick([]string{string(process.ModeAuto), string(process.ModeManual)}, "Processing mode: ")
	if err != nil {
		return "", err
	}
	switch choice {
	case string(process.ModeAuto):
		return process.ModeAuto, nil
	case string(process.ModeManual):
		return process.ModeManual, nil
	default:
		return "", errors.New("no processing mode selected")
	}
}

func runUndo(hist *history.Log) error {
	res, err := mover.UndoLastBatch(hist)
	if err != nil {
		return err
	}
	for _, uerr := range res.Errors {
		log.Errorf("undo: %v", uerr)
	}
	if res.Restored > 0 {
		fmt.Printf("Restored %d file(s)\n", res.Restored)
	}
	if res.Removed > 0 {
		fmt.Printf("Removed %d copied file(s)\n", res.Removed)
	}
	if len(res.Errors) > 0 {
		return fmt.Errorf("%d file(s) could not be undone", len(res.Errors))
	}
	return nil
}

func runHistory(hist *history.Log) error {
	entries, err := hist.Recent(20)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No recent operations.")
		return nil
	}

	fmt.Println("Recent operations:")
	for i, e := range entries {
		fmt.Printf("%2d. [%s] %s: %s -> %s\n",
			i+1,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Operation,
			filepath.Base(e.Source),
			e.Theme,
		)
	}
	fmt.Println("\nTo undo the most recent batch: huesort --undo")
	return nil
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("config file already exists: %s", cfgPath)
	}

	if err := config.Save(config.Default(), cfgPath); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("Generated default config file: %s\n", cfgPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
