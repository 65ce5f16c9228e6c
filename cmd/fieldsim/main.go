package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avaldes/fieldsim/internal/config"
	"github.com/avaldes/fieldsim/internal/export"
	"github.com/avaldes/fieldsim/internal/laplace"
	"github.com/avaldes/fieldsim/internal/logger"
	"github.com/avaldes/fieldsim/internal/storage"
	"github.com/avaldes/fieldsim/internal/viz"
)

var (
	dataDir   string
	gridSize  int
	tolerance float64
	maxIter   int
	method    string
	// Boundary voltages
	left   float64
	right  float64
	top    float64
	bottom float64
	// Config file and preset
	configFile string
	preset     string
	// Live view pacing
	sweepsPerTick int
	// Export target
	outDir string
)

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gridSize, "n", config.DefaultGridSize, "grid size (N x N)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "convergence tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIterations, "iteration budget")
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "update discipline (gauss-seidel or jacobi)")
	cmd.Flags().Float64Var(&left, "left", 0, "left edge voltage")
	cmd.Flags().Float64Var(&right, "right", 0, "right edge voltage")
	cmd.Flags().Float64Var(&top, "top", 0, "top edge voltage")
	cmd.Flags().Float64Var(&bottom, "bottom", 0, "bottom edge voltage")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset boundary configuration")
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldsim",
		Short: "2D electrostatic field lab",
		Long:  "Solves the Laplace equation on the unit square with Dirichlet boundary voltages and derives the electric field.",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldsim", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "run a solve and store the result",
		RunE:  runSolve,
	}
	addSolveFlags(solveCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the relaxation converge in the terminal",
		RunE:  runLive,
	}
	addSolveFlags(liveCmd)
	liveCmd.Flags().IntVar(&sweepsPerTick, "sweeps", 5, "sweeps per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "render a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "write potential and field images for a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored potential to stdout as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run both update disciplines on the same boundary configuration",
		RunE:  compareMethods,
	}
	addSolveFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset boundary configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tN\tLEFT\tRIGHT\tTOP\tBOTTOM")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\n",
					name, p.GridSize,
					p.Boundary.Left, p.Boundary.Right, p.Boundary.Top, p.Boundary.Bottom)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(solveCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file, and explicit flags,
// in that order. Flags win only when actually set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *fileCfg
	}

	if cmd.Flags().Changed("n") {
		cfg.GridSize = gridSize
	}
	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("max-iter") {
		cfg.MaxIterations = maxIter
	}
	if cmd.Flags().Changed("left") {
		cfg.Boundary.Left = left
	}
	if cmd.Flags().Changed("right") {
		cfg.Boundary.Right = right
	}
	if cmd.Flags().Changed("top") {
		cfg.Boundary.Top = top
	}
	if cmd.Flags().Changed("bottom") {
		cfg.Boundary.Bottom = bottom
	}

	return cfg, nil
}

func setup(cfg *config.Config) (*laplace.Grid, *laplace.Solver, error) {
	m, err := laplace.ParseMethod(cfg.Method)
	if err != nil {
		return nil, nil, err
	}
	g, err := laplace.NewGrid(cfg.GridSize)
	if err != nil {
		return nil, nil, err
	}
	g.ApplyBoundary(cfg.Boundary.Boundary())
	return g, laplace.NewSolver(g, m), nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	g, solver, err := setup(cfg)
	if err != nil {
		return err
	}

	log := logger.Logger()
	log.Info().
		Int("n", cfg.GridSize).
		Str("method", cfg.Method).
		Float64("tolerance", cfg.Tolerance).
		Int("max_iterations", cfg.MaxIterations).
		Msg("solving")

	start := time.Now()
	res, solveErr := solver.Solve(context.Background(), cfg.Tolerance, cfg.MaxIterations)
	elapsed := time.Since(start)

	var (
		iterations int
		residual   float64
		history    []float64
	)
	converged := solveErr == nil
	if converged {
		iterations = res.Iterations
		residual = res.Residual
		history = res.History
		log.Info().Int("iterations", iterations).Dur("elapsed", elapsed).Msg("converged")
	} else {
		var nc *laplace.NotConvergedError
		if !errors.As(solveErr, &nc) {
			return solveErr
		}
		iterations = nc.Iterations
		residual = nc.Residual
		log.Warn().
			Int("iterations", iterations).
			Float64("residual", residual).
			Msg("iteration budget exhausted, storing partial state")
	}

	potential := g.Potential()
	ex, ey := g.ElectricField()
	vmin, vmax := laplace.Range(potential)
	_, maxE := laplace.Range(laplace.Magnitude(ex, ey))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		GridSize:      cfg.GridSize,
		Method:        cfg.Method,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
		Left:          cfg.Boundary.Left,
		Right:         cfg.Boundary.Right,
		Top:           cfg.Boundary.Top,
		Bottom:        cfg.Boundary.Bottom,
		Iterations:    iterations,
		Converged:     converged,
		MinPotential:  vmin,
		MaxPotential:  vmax,
		MaxField:      maxE,
	}, potential, history)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("iterations: %d\n", iterations)
	fmt.Printf("residual: %.3e\n", residual)
	fmt.Printf("potential range: %.3f V .. %.3f V\n", vmin, vmax)
	fmt.Printf("max |E|: %.3f V/m\n", maxE)

	if !converged {
		return solveErr
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	g, solver, err := setup(cfg)
	if err != nil {
		return err
	}

	m := viz.NewLive(g, solver, cfg.Boundary.Boundary(), cfg.Tolerance, cfg.MaxIterations, sweepsPerTick)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tN\tMETHOD\tTOL\tITERS\tCONVERGED\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%.1e\t%d\t%t\t%s\n",
			run.ID,
			run.GridSize,
			run.Method,
			run.Tolerance,
			run.Iterations,
			run.Converged,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	potential, err := st.LoadPotential(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("boundary: left=%.2f right=%.2f top=%.2f bottom=%.2f\n",
		meta.Left, meta.Right, meta.Top, meta.Bottom)
	fmt.Printf("iterations: %d (converged: %t)\n\n", meta.Iterations, meta.Converged)

	fmt.Println("potential V(x,y):")
	fmt.Println(viz.RenderHeatmap(potential, 60))

	g, err := laplace.NewGridFrom(potential)
	if err != nil {
		return err
	}
	ex, ey := g.ElectricField()
	fmt.Println("electric field E(x,y):")
	fmt.Println(viz.RenderField(ex, ey, 60, 15))

	residuals, err := st.LoadResiduals(runID)
	if err != nil {
		return err
	}
	if len(residuals) > 1 {
		data := make([]float64, len(residuals))
		for i, r := range residuals {
			data[i] = math.Log10(r + 1e-300)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("log10 max interior change per sweep"),
		)
		fmt.Println(graph)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	potential, err := st.LoadPotential(runID)
	if err != nil {
		return err
	}
	g, err := laplace.NewGridFrom(potential)
	if err != nil {
		return err
	}
	ex, ey := g.ElectricField()

	log := logger.Logger()

	heatPath := filepath.Join(outDir, runID+"_potential.png")
	if err := export.HeatmapPNG(heatPath, potential); err != nil {
		return err
	}
	log.Info().Str("path", heatPath).Msg("wrote potential heat map")

	fieldPath := filepath.Join(outDir, runID+"_field.png")
	if err := export.FieldPNG(fieldPath, ex, ey); err != nil {
		return err
	}
	log.Info().Str("path", fieldPath).Msg("wrote field plot")

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	potential, err := st.LoadPotential(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	row := make([]string, 0, len(potential))
	for i := range potential {
		row = row[:0]
		for _, val := range potential[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing methods (n=%d, tolerance=%.1e, budget=%d)\n\n",
		cfg.GridSize, cfg.Tolerance, cfg.MaxIterations)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tITERS\tRESIDUAL\tCONVERGED\tTIME")

	for _, m := range []laplace.Method{laplace.GaussSeidel, laplace.Jacobi} {
		g, err := laplace.NewGrid(cfg.GridSize)
		if err != nil {
			return err
		}
		g.ApplyBoundary(cfg.Boundary.Boundary())
		solver := laplace.NewSolver(g, m)

		start := time.Now()
		res, solveErr := solver.Solve(context.Background(), cfg.Tolerance, cfg.MaxIterations)
		elapsed := time.Since(start)

		switch {
		case solveErr == nil:
			fmt.Fprintf(w, "%s\t%d\t%.3e\t%t\t%v\n", m, res.Iterations, res.Residual, true, elapsed)
		default:
			var nc *laplace.NotConvergedError
			if !errors.As(solveErr, &nc) {
				return solveErr
			}
			fmt.Fprintf(w, "%s\t%d\t%.3e\t%t\t%v\n", m, nc.Iterations, nc.Residual, false, elapsed)
		}
	}

	return w.Flush()
}
