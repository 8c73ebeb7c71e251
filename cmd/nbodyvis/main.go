package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbodyvis/internal/config"
	"github.com/san-kum/nbodyvis/internal/export"
	"github.com/san-kum/nbodyvis/internal/frames"
	"github.com/san-kum/nbodyvis/internal/render"
	"github.com/san-kum/nbodyvis/internal/stats"
	"github.com/san-kum/nbodyvis/internal/tui"
	"github.com/san-kum/nbodyvis/internal/viz"
)

var (
	configFile  string
	preset      string
	format      string
	outPath     string
	frameIdx    int
	flipAxes    bool
	pointSize   float64
	plotName    string
	gridVisible bool
	sortRows    bool
	theme       string
	width       int
	height      int
	fps         int
	quiet       bool
	asJSON      bool
	shader      string
	assetsHost  string
)

// main runs the root command, exiting with status 1 if it returns an error.
func main() {
	log.SetFlags(0)
	log.SetPrefix("nbodyvis: ")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flag variables are reset to their
// defaults each time it is called.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "nbodyvis [csv]",
		Short:        "n-body simulation frame viewer",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         viewFrames,
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if quiet {
			log.SetOutput(io.Discard)
		}
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&sortRows, "sort", false, "sort rows step-major, body-minor before reshaping")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")
	pf.BoolVar(&flipAxes, "flip", false, "convert z-up to y-up: (x, y, z) -> (x, -z, y)")
	pf.Float64Var(&pointSize, "size", config.DefaultPointSize, "point size")
	pf.StringVar(&plotName, "name", config.DefaultName, "plot name")
	pf.BoolVar(&gridVisible, "grid", false, "draw the bounding grid")
	pf.StringVar(&shader, "shader", config.DefaultShader, fmt.Sprintf("point shader %v", viz.Shaders))
	pf.StringVar(&theme, "theme", config.DefaultTheme, fmt.Sprintf("terminal theme %v", viz.ThemeNames()))
	pf.IntVar(&width, "width", config.DefaultWidth, "terminal canvas width in cells")
	pf.IntVar(&height, "height", config.DefaultHeight, "terminal canvas height in cells")

	loadCmd := &cobra.Command{
		Use:   "load [csv]",
		Short: "load a simulation CSV and print the frame tensor shape",
		Args:  cobra.MaximumNArgs(1),
		RunE:  loadFrames,
	}
	loadCmd.Flags().BoolVar(&asJSON, "json", false, "dump the frame tensor as JSON")

	frameCmd := &cobra.Command{
		Use:   "frame [csv]",
		Short: "render one frame as a point cloud",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrame,
	}
	frameCmd.Flags().IntVarP(&frameIdx, "frame", "f", 0, "zero-based frame index")
	addOutputFlags(frameCmd)

	cloudCmd := &cobra.Command{
		Use:   "cloud [csv]",
		Short: "render every position of every frame as one static cloud",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderCloud,
	}
	addOutputFlags(cloudCmd)

	viewCmd := &cobra.Command{
		Use:   "view [csv]",
		Short: "step through frames interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  viewFrames,
	}
	viewCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "playback frame rate")

	statsCmd := &cobra.Command{
		Use:   "stats [csv]",
		Short: "plot the spread of bodies over time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  frameStats,
	}

	convertCmd := &cobra.Command{
		Use:   "convert [csv] out",
		Short: "rewrite a simulation CSV, optionally sorted or axis-flipped",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  convertCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(loadCmd, frameCmd, cloudCmd, viewCmd, statsCmd, convertCmd, presetsCmd)
	return rootCmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&format, "format", "", "output format: term, html, svg, png, json (default from --out or config)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&assetsHost, "assets-host", "", "serve echarts scripts from this URL in html output")
}

// loadConfig resolves preset, then config file, then changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("flip") {
		cfg.FlipAxes = flipAxes
	}
	if flags.Changed("size") {
		cfg.PointSize = pointSize
	}
	if flags.Changed("name") {
		cfg.Name = plotName
	}
	if flags.Changed("grid") {
		cfg.GridVisible = gridVisible
	}
	if flags.Changed("sort") {
		cfg.Sort = sortRows
	}
	if flags.Changed("shader") {
		cfg.Shader = shader
	}
	if flags.Changed("theme") {
		cfg.Display.Theme = theme
	}
	if flags.Changed("width") {
		cfg.Display.Width = width
	}
	if flags.Changed("height") {
		cfg.Display.Height = height
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.Display.FPS = fps
	}
	if flags.Lookup("assets-host") != nil && flags.Changed("assets-host") {
		cfg.Display.AssetsHost = assetsHost
	}
	if flags.Lookup("format") != nil {
		if flags.Changed("format") {
			cfg.Display.Format = format
		} else if outPath != "" {
			cfg.Display.Format = export.FormatFromPath(outPath, cfg.Display.Format)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	viz.SetTheme(cfg.Display.Theme)
	return cfg, nil
}

func dataPath(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Data
}

func loadTensor(cfg *config.Config, path string) (*frames.Tensor, error) {
	if cfg.Sort {
		return frames.LoadSorted(path)
	}
	return frames.Load(path)
}

// openDisplay returns the configured display and a close func for its
// output file.
func openDisplay(cfg *config.Config) (viz.Display, func() error, error) {
	var w io.Writer = os.Stdout
	closer := func() error { return nil }
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f.Close
	}
	d, err := export.ForFormat(cfg.Display.Format, w, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		closer()
		return nil, nil, err
	}
	if h, ok := d.(*export.HTML); ok && cfg.Display.AssetsHost != "" {
		h.AssetsHost = cfg.Display.AssetsHost
	}
	return d, closer, nil
}

func loadFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	t, err := loadTensor(cfg, dataPath(cfg, args))
	if err != nil {
		return err
	}
	if asJSON {
		return export.ExportTensor(os.Stdout, t)
	}
	steps, bodies, axes := t.Shape()
	fmt.Printf("shape: (%d, %d, %d)\n\n", steps, bodies, axes)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tBODIES\tCENTROID\tRMS RADIUS")
	for step, s := range stats.Series(t) {
		c := s.Centroid
		fmt.Fprintf(w, "%d\t%d\t(%.4f, %.4f, %.4f)\t%.4f\n", step, s.Count, c.X, c.Y, c.Z, s.RMSRadius)
	}
	return w.Flush()
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, closeOut, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	if _, err := render.FrameWith(d, dataPath(cfg, args), frameIdx, render.FromConfig(cfg)); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func renderCloud(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, closeOut, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	if _, err := render.Cloud(d, dataPath(cfg, args), render.FromConfig(cfg)); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func viewFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	t, err := loadTensor(cfg, dataPath(cfg, args))
	if err != nil {
		return err
	}
	return tui.Run(t, render.FromConfig(cfg), cfg.Display.Width, cfg.Display.Height, cfg.Display.FPS)
}

func frameStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	t, err := loadTensor(cfg, dataPath(cfg, args))
	if err != nil {
		return err
	}
	series := stats.Series(t)
	radii := stats.RMSRadii(series)

	if len(radii) > 1 {
		chart := asciigraph.Plot(radii, asciigraph.Height(12), asciigraph.Width(60), asciigraph.Caption("RMS radius vs step"))
		fmt.Println(chart)
		fmt.Println()
	}
	last := series[len(series)-1]
	fmt.Printf("steps:       %d\n", t.Steps)
	fmt.Printf("bodies:      %d\n", t.Bodies)
	fmt.Printf("rms radius:  %.4f -> %.4f\n", series[0].RMSRadius, last.RMSRadius)
	fmt.Printf("max radius:  %.4f\n", last.MaxRadius)
	fmt.Printf("drift:       %.6f\n", stats.Drift(series))
	return nil
}

func convertCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	in, out := cfg.Data, args[len(args)-1]
	if len(args) == 2 {
		in = args[0]
	}
	tbl, err := frames.ReadFile(in)
	if err != nil {
		return err
	}
	if cfg.Sort {
		tbl = frames.Sorted(tbl)
	}
	if cfg.FlipAxes {
		for i := range tbl.Records {
			r := &tbl.Records[i]
			r.Y, r.Z = -r.Z, r.Y
		}
	}
	if err := frames.WriteFile(out, tbl); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(tbl.Records), out)
	return nil
}
