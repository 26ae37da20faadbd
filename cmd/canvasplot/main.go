// Package main provides the CLI entrypoint for canvasplot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/canvasplot/internal/chartfile"
	"github.com/verte-zerg/canvasplot/internal/config"
	"github.com/verte-zerg/canvasplot/internal/render"
	"github.com/verte-zerg/canvasplot/internal/source"
	"github.com/verte-zerg/canvasplot/internal/style"
	"github.com/verte-zerg/canvasplot/internal/surface/raster"
	"github.com/verte-zerg/canvasplot/internal/surface/term"
	"github.com/verte-zerg/canvasplot/internal/viewer"
)

var (
	verbose bool

	renderOut        string
	renderWidth      int
	renderHeight     int
	renderBackground string

	showWidth  int
	showHeight int
	showColor  bool

	viewColor bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "canvasplot",
		Short:         "Render line, scatter and calendar charts from TOML chart files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupLogging(debug bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Write every chart of FILE as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  runRenderCmd,
	}
	cmd.Flags().StringVarP(&renderOut, "out", "o", config.DefaultOutDir, "output directory")
	cmd.Flags().IntVar(&renderWidth, "width", config.DefaultWidth, "default chart width in pixels")
	cmd.Flags().IntVar(&renderHeight, "height", config.DefaultHeight, "default chart height in pixels")
	cmd.Flags().StringVar(&renderBackground, "background", config.DefaultBackground, "background color")
	return cmd
}

func runRenderCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "out", &renderOut, fileCfg.Render.OutDir)
	applyIntConfig(cmd, "width", &renderWidth, fileCfg.Render.Width)
	applyIntConfig(cmd, "height", &renderHeight, fileCfg.Render.Height)
	applyStringConfig(cmd, "background", &renderBackground, fileCfg.Render.Background)

	if renderWidth <= 0 || renderHeight <= 0 {
		return fmt.Errorf("--width and --height must be > 0")
	}
	background, err := style.Parse(renderBackground)
	if err != nil {
		return fmt.Errorf("invalid --background: %w", err)
	}

	charts, err := loadCharts(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	defaults := render.Defaults{Width: renderWidth, Height: renderHeight, Palette: fileCfg.Render.Palette}
	failed := 0
	for _, c := range charts {
		c = defaults.Apply(c)
		logrus.Debugf("Rendering chart %q: kind=%s width=%d height=%d", c.Name, c.Kind, c.Width, c.Height)
		s := raster.New(c.Width, c.Height, raster.WithBackground(background))
		if err := render.Draw(s, c); err != nil {
			logrus.Warnf("skipping chart: %v", err)
			failed++
			continue
		}
		path := filepath.Join(renderOut, c.Name+".png")
		if err := s.SavePNG(path); err != nil {
			return err
		}
		logrus.Infof("wrote %s", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d charts failed to render", failed, len(charts))
	}
	return nil
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print every chart of FILE in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowCmd,
	}
	cmd.Flags().IntVar(&showWidth, "width", 0, "chart width in columns (default: terminal width)")
	cmd.Flags().IntVar(&showHeight, "height", 0, "chart height in rows")
	cmd.Flags().BoolVar(&showColor, "color", false, "force colored output")
	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "color", &showColor, fileCfg.Render.Color)

	charts, err := loadCharts(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cols, rows := term.SizeFor(showWidth, showHeight)
	logrus.Debugf("Using terminal grid: cols=%d rows=%d", cols, rows)
	out := cmd.OutOrStdout()
	renderer := term.NewRenderer(out, showColor)
	defaults := render.Defaults{Palette: fileCfg.Render.Palette}

	failed := 0
	printed := 0
	for _, c := range charts {
		c = defaults.Apply(c)
		s := term.New(cols, rows)
		if err := render.Draw(s, c); err != nil {
			logrus.Warnf("skipping chart: %v", err)
			failed++
			continue
		}
		if printed > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, c.Name)
		fmt.Fprintln(out, s.Render(renderer))
		printed++
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d charts failed to render", failed, len(charts))
	}
	return nil
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Browse the charts of FILE interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runViewCmd,
	}
	cmd.Flags().BoolVar(&viewColor, "color", false, "force colored output")
	return cmd
}

func runViewCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "color", &viewColor, fileCfg.Render.Color)

	charts, err := loadCharts(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defaults := render.Defaults{Palette: fileCfg.Render.Palette}
	for i := range charts {
		charts[i] = defaults.Apply(charts[i])
	}
	model, err := viewer.NewModel(charts, term.ShouldUseColor(os.Stdout, viewColor))
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE",
		Short: "Print bounds and last value of every chart of FILE",
		Args:  cobra.ExactArgs(1),
		RunE:  runDescribeCmd,
	}
}

func runDescribeCmd(cmd *cobra.Command, args []string) error {
	charts, err := loadCharts(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	sums, err := render.Describe(charts)
	if err != nil {
		return fmt.Errorf("failed to describe charts: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.FormatSummaries(sums))
	return nil
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
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logrus.Debugf("Created config at %s", path)
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

// loadCharts reads the chart file and resolves query series against its
// database, when it names one.
func loadCharts(ctx context.Context, path string) ([]chartfile.Resolved, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := chartfile.Load(path)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Loaded %d charts from %s", len(doc.Charts), path)

	var src chartfile.PointSource
	if doc.NeedsDB() {
		dbPath := doc.DBPath()
		logrus.Debugf("Opening database %s", dbPath)
		st, err := source.Open(dbPath)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logrus.Warnf("failed to close db: %v", cerr)
			}
		}()
		src = st
	}
	charts, err := doc.Resolve(ctx, src)
	if err != nil {
		return nil, err
	}
	return charts, nil
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
