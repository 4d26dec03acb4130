// Package main provides the CLI entrypoint for fourstroke.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/fourstroke/internal/anim"
	"github.com/verte-zerg/fourstroke/internal/canvas"
	"github.com/verte-zerg/fourstroke/internal/config"
	"github.com/verte-zerg/fourstroke/internal/geometry"
	"github.com/verte-zerg/fourstroke/internal/locale"
	"github.com/verte-zerg/fourstroke/internal/model"
	"github.com/verte-zerg/fourstroke/internal/quiz"
	"github.com/verte-zerg/fourstroke/internal/scene"
	"github.com/verte-zerg/fourstroke/internal/stats"
	"github.com/verte-zerg/fourstroke/internal/statsui"
	"github.com/verte-zerg/fourstroke/internal/store"
	"github.com/verte-zerg/fourstroke/internal/tui"
)

const (
	defaultLang          = locale.DefaultLang
	defaultFPS           = 60
	maxFPS               = 240
	defaultSnapshotWidth = 1100
	defaultSnapshotOut   = "fourstroke.png"
	defaultSnapshotBG    = "#ffffff"
	defaultFrameCols     = 80
	// Logical pixels per terminal cell for the plain-text frame.
	frameCellWidth  = 7
	frameCellHeight = 14
)

var (
	verbose bool

	displayLang string
	displayFPS  int

	snapshotLang       string
	snapshotWidth      int
	snapshotFont       string
	snapshotOut        string
	snapshotBackground string
	snapshotProgress   float64
	snapshotFrames     int

	frameLang     string
	frameProgress float64
	frameCols     int

	quizLang string

	statsLang  string
	statsSince string
	statsLast  int
	statsTUI   bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fourstroke",
		Short:         "Animated four-stroke engine cycle with a quiz",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogging(verbose)
		},
		RunE: runDisplayCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log rendering diagnostics to stderr")
	rootCmd.Flags().StringVar(&displayLang, "lang", defaultLang, "language code (default: en)")
	rootCmd.Flags().IntVar(&displayFPS, "fps", defaultFPS, "animation frames per second")

	rootCmd.AddCommand(newSnapshotCmd())
	rootCmd.AddCommand(newFrameCmd())
	rootCmd.AddCommand(newQuizCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())

	return rootCmd
}

func configureLogging(enabled bool) {
	if !enabled {
		return
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	gg.SetLogger(slog.New(handler))
}

func runDisplayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &displayLang, fileCfg.Display.Lang)
	applyIntConfig(cmd, "fps", &displayFPS, fileCfg.Display.FPS)

	cfg := model.Config{Lang: displayLang, FPS: displayFPS}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	loc, err := locale.Get(cfg.Lang)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		// The diagram still works without history.
		logErrf("failed to open db, quiz answers will not be saved: %v\n", err)
	}
	if st != nil {
		defer closeStore(st)
	}

	m := tui.NewModel(cfg, loc, st)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the diagram to PNG",
		Args:  cobra.NoArgs,
		RunE:  runSnapshotCmd,
	}
	cmd.Flags().StringVar(&snapshotLang, "lang", defaultLang, "language code")
	cmd.Flags().IntVar(&snapshotWidth, "width", defaultSnapshotWidth, "image width in pixels")
	cmd.Flags().StringVar(&snapshotFont, "font", "", "TTF/OTF font file (default: Go fonts)")
	cmd.Flags().StringVar(&snapshotOut, "out", defaultSnapshotOut, "output file, or directory with --frames")
	cmd.Flags().StringVar(&snapshotBackground, "background", defaultSnapshotBG, "background colour (#rgb, #rrggbb or #rrggbbaa)")
	cmd.Flags().Float64Var(&snapshotProgress, "progress", 0, "cycle progress to draw (0-4)")
	cmd.Flags().IntVar(&snapshotFrames, "frames", 0, "render N frames covering one full cycle")
	return cmd
}

func runSnapshotCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &snapshotLang, fileCfg.Display.Lang)
	applyIntConfig(cmd, "width", &snapshotWidth, fileCfg.Snapshot.Width)
	applyStringConfig(cmd, "font", &snapshotFont, fileCfg.Snapshot.Font)
	applyStringConfig(cmd, "out", &snapshotOut, fileCfg.Snapshot.Out)
	applyStringConfig(cmd, "background", &snapshotBackground, fileCfg.Snapshot.Background)

	cfg := model.SnapshotConfig{
		Lang:       snapshotLang,
		Width:      snapshotWidth,
		Font:       snapshotFont,
		Out:        snapshotOut,
		Background: snapshotBackground,
		Progress:   snapshotProgress,
		Frames:     snapshotFrames,
	}
	if err := validateSnapshotConfig(cfg); err != nil {
		return err
	}
	paths, err := renderSnapshot(cfg)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// renderSnapshot writes one PNG, or cfg.Frames PNGs spread evenly over a
// full cycle, and returns the written paths.
func renderSnapshot(cfg model.SnapshotConfig) ([]string, error) {
	loc, err := locale.Get(cfg.Lang)
	if err != nil {
		return nil, err
	}
	var opts []canvas.RasterOption
	if cfg.Font != "" {
		opts = append(opts, canvas.WithFontFile(cfg.Font))
	}
	if cfg.Background != "" {
		opts = append(opts, canvas.WithBackground(cfg.Background))
	}
	raster, err := canvas.NewRaster(cfg.Width, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	defer func() {
		if cerr := raster.Close(); cerr != nil {
			logErrf("failed to release image: %v\n", cerr)
		}
	}()

	label := &scene.TextLabel{}
	renderer := scene.NewRenderer(raster, label, nil, loc)

	if cfg.Frames <= 0 {
		renderer.Render(cfg.Progress)
		if err := ensureParent(cfg.Out); err != nil {
			return nil, err
		}
		if err := raster.SavePNG(cfg.Out); err != nil {
			return nil, err
		}
		if verbose {
			logErrf("%s at progress %.2f\n", label.Text, cfg.Progress)
		}
		return []string{cfg.Out}, nil
	}

	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	sched := anim.NewManualScheduler()
	driver := anim.New(sched, sched.Clock, renderer)
	step := anim.CycleDuration / float64(cfg.Frames)
	paths := make([]string, 0, cfg.Frames)
	save := func(i int) error {
		path := filepath.Join(cfg.Out, fmt.Sprintf("frame-%03d.png", i))
		if err := raster.SavePNG(path); err != nil {
			return err
		}
		if verbose {
			logErrf("%s: %s (%.3f)\n", path, label.Text, driver.Progress())
		}
		paths = append(paths, path)
		return nil
	}

	driver.Start()
	if err := save(0); err != nil {
		return nil, err
	}
	for i := 1; i < cfg.Frames; i++ {
		if !sched.Step(step) {
			return nil, fmt.Errorf("animation stopped at frame %d", i)
		}
		if err := save(i); err != nil {
			return nil, err
		}
	}
	driver.Pause()
	return paths, nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func newFrameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Print one text frame of the diagram",
		Args:  cobra.NoArgs,
		RunE:  runFrameCmd,
	}
	cmd.Flags().StringVar(&frameLang, "lang", defaultLang, "language code")
	cmd.Flags().Float64Var(&frameProgress, "progress", 0, "cycle progress to draw (0-4)")
	cmd.Flags().IntVar(&frameCols, "cols", 0, "columns (default: terminal width)")
	return cmd
}

func runFrameCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &frameLang, fileCfg.Display.Lang)
	loc, err := locale.Get(frameLang)
	if err != nil {
		return err
	}
	cols := frameCols
	if cols <= 0 {
		cols = terminalColumns()
	}
	return writeTextFrame(cmd.OutOrStdout(), loc, cols, frameProgress)
}

func terminalColumns() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultFrameCols
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultFrameCols
	}
	return width
}

func writeTextFrame(w io.Writer, loc locale.Locale, cols int, progress float64) error {
	if cols < 10 {
		return fmt.Errorf("--cols must be >= 10")
	}
	if err := validateProgress(progress); err != nil {
		return err
	}
	width := float64(cols * frameCellWidth)
	rows := max(int(math.Round(geometry.HeightFor(width)/frameCellHeight)), 1)
	grid := canvas.NewGrid(cols, rows, width)
	label := &scene.TextLabel{}
	panel := &scene.TextPanel{}
	scene.NewRenderer(grid, label, panel, loc).Render(progress)

	var b strings.Builder
	b.WriteString(grid.String())
	b.WriteString("\n\n")
	b.WriteString(label.Text)
	b.WriteString("\n")
	b.WriteString(panel.Explanation.Title)
	b.WriteString("\n")
	for _, fact := range panel.Explanation.Facts {
		fmt.Fprintf(&b, "  %s: %s\n", fact.Label, fact.Text)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz [answer]",
		Short: "Answer the valve quiz",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runQuizCmd,
	}
	cmd.Flags().StringVar(&quizLang, "lang", defaultLang, "language code")
	return cmd
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &quizLang, fileCfg.Display.Lang)
	loc, err := locale.Get(quizLang)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if _, err := fmt.Fprintln(out, quiz.Question(loc)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	result, err := answerQuiz(cmd.Context(), st, loc, args[0], time.Now())
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, result.Message); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func answerQuiz(ctx context.Context, st *store.Store, loc locale.Locale, answer string, at time.Time) (quiz.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	result := quiz.Check(loc, answer)
	attempt := model.QuizAttempt{
		AnsweredAt: at,
		Lang:       loc.Code,
		Answer:     answer,
		Correct:    result.Correct,
	}
	if _, err := st.InsertAttempt(ctx, attempt); err != nil {
		return quiz.Result{}, fmt.Errorf("failed to save quiz attempt: %w", err)
	}
	return result, nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show quiz history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().BoolVar(&statsTUI, "tui", false, "browse quiz history interactively")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	filter, err := buildFilter(statsLang, statsSince, statsLast)
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if statsTUI {
		program := tea.NewProgram(statsui.NewModel(st, filter), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}
	report, err := stats.BuildReport(ctx, st, filter)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.WriteSummary(cmd.OutOrStdout(), report.Summary); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func buildFilter(lang, since string, last int) (model.AttemptFilter, error) {
	filter := model.AttemptFilter{Last: last}
	if last < 0 {
		return filter, fmt.Errorf("--last must be >= 0")
	}
	if lang != "" {
		loc, err := locale.Get(lang)
		if err != nil {
			return filter, err
		}
		filter.Lang = loc.Code
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	return filter, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	for _, lang := range locale.Languages() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fourstroke configuration
# Uncomment a value to enable it. CLI flags override config values.

[display]
# lang = %q             # Language code (%s)
# fps = %d                # Animation frames per second

[snapshot]
# width = %d            # PNG width in pixels; height follows 550:350
# font = ""               # TTF/OTF font file for PNG text
# out = %q   # Output file or directory for --frames
# background = %q      # PNG background colour
`,
		defaultLang,
		strings.Join(locale.Languages(), ", "),
		defaultFPS,
		defaultSnapshotWidth,
		defaultSnapshotOut,
		defaultSnapshotBG,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.FPS <= 0 || cfg.FPS > maxFPS {
		return fmt.Errorf("--fps must be between 1 and %d", maxFPS)
	}
	if _, err := locale.Get(cfg.Lang); err != nil {
		return err
	}
	return nil
}

func validateSnapshotConfig(cfg model.SnapshotConfig) error {
	if cfg.Width <= 0 {
		return fmt.Errorf("--width must be > 0")
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("--frames must be >= 0")
	}
	if cfg.Out == "" {
		return fmt.Errorf("--out must not be empty")
	}
	if cfg.Background != "" && !validHexColor(cfg.Background) {
		return fmt.Errorf("--background must be a hex colour like #ffffff, got %q", cfg.Background)
	}
	if err := validateProgress(cfg.Progress); err != nil {
		return err
	}
	if _, err := locale.Get(cfg.Lang); err != nil {
		return err
	}
	return nil
}

func validateProgress(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("--progress must be a finite number")
	}
	return nil
}

// validHexColor accepts #rgb, #rrggbb and #rrggbbaa.
func validHexColor(s string) bool {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return false
	}
	switch len(hex) {
	case 3, 6, 8:
	default:
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
