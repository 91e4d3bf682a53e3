package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nickjhughes/luminet-blackhole/pkg/blackhole"
	"github.com/nickjhughes/luminet-blackhole/pkg/dither"
	"github.com/nickjhughes/luminet-blackhole/pkg/plot"
	"github.com/nickjhughes/luminet-blackhole/pkg/render"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "luminet-blackhole",
		Short:         "Render the apparent image of a thin accretion disk around a Schwarzschild black hole",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFluxCommand())
	root.AddCommand(newFluxRangeCommand())
	root.AddCommand(newIsoradialsCommand())
	root.AddCommand(newDitherCommand())
	return root
}

// diskFlags configures the black hole and its disk, shared by every
// rendering command.
type diskFlags struct {
	accretionRate float64
	diskOuterEdge float64
}

func (f *diskFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.accretionRate, "accretion-rate", blackhole.DefaultAccretionRate,
		"black hole's accretion rate")
	cmd.Flags().Float64Var(&f.diskOuterEdge, "disk-outer-edge", blackhole.DefaultDiskOuterEdge,
		"accretion disk outer edge, in units of black hole mass")
}

func (f *diskFlags) blackHole() (*blackhole.BlackHole, error) {
	return blackhole.New(1.0, f.accretionRate, f.diskOuterEdge)
}

// renderFlags configures the sampling engine and output mapping.
type renderFlags struct {
	samples       int
	width, height int
	maxOrder      int
	seed          int64
	workers       int
	tolerance     float64
	maxIterations int
	colormap      string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	defaults := render.DefaultConfig()
	cmd.Flags().IntVarP(&f.samples, "samples", "s", defaults.Samples,
		"number of flux samples per image order (more = slower but better quality output)")
	cmd.Flags().IntVar(&f.width, "width", defaults.Width, "output image width in pixels")
	cmd.Flags().IntVar(&f.height, "height", defaults.Height, "output image height in pixels")
	cmd.Flags().IntVar(&f.maxOrder, "max-order", defaults.MaxOrder, "highest ghost image order to render")
	cmd.Flags().Int64Var(&f.seed, "seed", defaults.Seed, "sample jitter seed")
	cmd.Flags().IntVar(&f.workers, "workers", defaults.NumWorkers, "number of parallel workers (0 = CPU count)")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", defaults.Solver.Tolerance, "path solver bisection tolerance")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", defaults.Solver.MaxIterations,
		"path solver iteration budget")
	cmd.Flags().StringVar(&f.colormap, "colormap", "gray", "output colormap: 'gray' or 'inferno'")
}

func (f *renderFlags) config() render.Config {
	cfg := render.DefaultConfig()
	cfg.Samples = f.samples
	cfg.Width = f.width
	cfg.Height = f.height
	cfg.MaxOrder = f.maxOrder
	cfg.Seed = f.seed
	cfg.NumWorkers = f.workers
	cfg.Solver.Tolerance = f.tolerance
	cfg.Solver.MaxIterations = f.maxIterations
	return cfg
}

// newEngine builds a render engine with a terminal progress bar attached.
func (f *renderFlags) newEngine(bh *blackhole.BlackHole) (*render.Engine, error) {
	engine, err := render.NewEngine(bh, f.config(), render.NewDefaultLogger())
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	stage := ""
	engine.Progress = func(st string, done, total int) {
		if bar == nil || st != stage {
			if bar != nil {
				_ = bar.Finish()
			}
			stage = st
			bar = progressbar.Default(int64(total), st)
		}
		_ = bar.Set(done)
	}
	return engine, nil
}

func (f *renderFlags) writeImage(path string, grid *render.FluxGrid, maxFlux float64) error {
	var img image.Image
	if f.colormap == "" || f.colormap == "gray" {
		img = render.GrayImage(grid, maxFlux)
	} else {
		cmap, err := render.ColormapByName(f.colormap)
		if err != nil {
			return err
		}
		img = render.ColorImage(grid, maxFlux, cmap)
	}
	return writePNG(path, img)
}

func newFluxCommand() *cobra.Command {
	var (
		inclination float64
		rf          renderFlags
		df          diskFlags
		samplesCSV  string
	)
	cmd := &cobra.Command{
		Use:   "flux [flags] path",
		Short: "Generate an image of the disk's observed flux",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bh, err := df.blackHole()
			if err != nil {
				return err
			}
			engine, err := rf.newEngine(bh)
			if err != nil {
				return err
			}
			res, err := engine.Render(inclination * math.Pi / 180)
			if err != nil {
				return err
			}
			if samplesCSV != "" {
				if err := writeSamplesCSV(samplesCSV, res.Samples); err != nil {
					return err
				}
			}
			return rf.writeImage(args[0], res.Grid, res.MaxFlux)
		},
	}
	cmd.Flags().Float64VarP(&inclination, "inclination", "i", 80.0,
		"viewer's inclination in degrees above the equatorial plane")
	rf.register(cmd)
	df.register(cmd)
	cmd.Flags().StringVar(&samplesCSV, "samples-csv", "", "also write raw samples to this CSV file")
	return cmd
}

func newFluxRangeCommand() *cobra.Command {
	var (
		start, end, step float64
		rf               renderFlags
		df               diskFlags
	)
	cmd := &cobra.Command{
		Use:   "flux-range [flags] directory filename-prefix",
		Short: "Generate a series of flux images over a range of inclinations",
		Long: "Generate a series of flux images over a range of inclinations.\n" +
			"Flux is normalized across the whole series so brightness is comparable between images.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			directory, prefix := args[0], args[1]
			info, err := os.Stat(directory)
			if err != nil {
				return fmt.Errorf("checking output directory: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("output path %q is not a directory", directory)
			}
			if step <= 0 {
				return fmt.Errorf("inclination step must be positive, got %v", step)
			}

			bh, err := df.blackHole()
			if err != nil {
				return err
			}
			engine, err := rf.newEngine(bh)
			if err != nil {
				return err
			}

			var (
				inclinations []float64
				results      []*render.Result
				maxFlux      float64
			)
			for deg := start; deg <= end; deg += step {
				res, err := engine.Render(deg * math.Pi / 180)
				if err != nil {
					return err
				}
				inclinations = append(inclinations, deg)
				results = append(results, res)
				if res.MaxFlux > maxFlux {
					maxFlux = res.MaxFlux
				}
			}

			for i, res := range results {
				path := filepath.Join(directory, fmt.Sprintf("%s%.0f.png", prefix, inclinations[i]))
				if err := rf.writeImage(path, res.Grid, maxFlux); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&start, "start", 10.0, "start of inclination range, degrees")
	cmd.Flags().Float64Var(&end, "end", 80.0, "end of inclination range, degrees")
	cmd.Flags().Float64Var(&step, "step", 10.0, "step size of inclination range, degrees")
	rf.register(cmd)
	df.register(cmd)
	return cmd
}

func newIsoradialsCommand() *cobra.Command {
	var (
		inclination float64
		directRadii []float64
		ghostRadii  []float64
		df          diskFlags
	)
	cmd := &cobra.Command{
		Use:   "isoradials [flags] path",
		Short: "Generate a plot of isoradial curves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bh, err := df.blackHole()
			if err != nil {
				return err
			}
			var curves []plot.Curve
			for _, r := range directRadii {
				curves = append(curves, plot.Curve{Radius: r, Order: 0})
			}
			for _, r := range ghostRadii {
				curves = append(curves, plot.Curve{Radius: r, Order: 1})
			}
			return plot.Isoradials(bh, inclination*math.Pi/180, curves,
				blackhole.DefaultSolverConfig(), args[0])
		},
	}
	cmd.Flags().Float64VarP(&inclination, "inclination", "i", 80.0,
		"viewer's inclination in degrees above the equatorial plane")
	cmd.Flags().Float64SliceVar(&directRadii, "direct-radii", []float64{6, 10, 20, 30},
		"direct (order = 0) radii to plot")
	cmd.Flags().Float64SliceVar(&ghostRadii, "ghost-radii", []float64{6, 10, 30, 10000},
		"ghost (order = 1) radii to plot")
	df.register(cmd)
	return cmd
}

func newDitherCommand() *cobra.Command {
	var algorithm string
	cmd := &cobra.Command{
		Use:   "dither [flags] input-path output-path",
		Short: "Dither an image to black and white",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := dither.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}
			src, err := readPNG(args[0])
			if err != nil {
				return err
			}
			gray := image.NewGray(src.Bounds())
			draw.Draw(gray, gray.Bounds(), src, src.Bounds().Min, draw.Src)
			if err := dither.Apply(alg, gray); err != nil {
				return err
			}
			return writePNG(args[1], gray)
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "floyd-steinberg",
		"dither algorithm: 'floyd-steinberg' or 'atkinson'")
	return cmd
}

func readPNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

func writeSamplesCSV(path string, samples []render.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()
	return render.WriteSamplesCSV(file, samples)
}
