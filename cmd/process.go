package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/codec"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/pipeline"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/settings"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/store"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/types"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/utils"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/walk"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/worker"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// Options holds the configuration surface of the process command.
type Options struct {
	InputPath   string
	OutputPath  string
	InputDir    string
	OutputDir   string
	LogoPath    string
	DryRun      bool
	DryRunLimit int
	Excludes    []string
	NumEngines  int
	Track       bool

	Blur           float64
	CenterScale    float64
	Feather        int
	LogoScale      float64
	PlateStyle     string
	PlateBlur      float64
	PlateTintAlpha int
}

var processOpts Options

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a single image or a directory tree",
	Long:  "Provide either --input/--output for a single image, or --input-dir/--output-dir to process a tree recursively (mirroring its structure).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runProcess(cmd.Context(), processOpts)
	},
}

func init() {
	defaults := settings.Default()

	processCmd.Flags().StringVarP(&processOpts.InputPath, "input", "i", "", "Single input image path")
	processCmd.Flags().StringVarP(&processOpts.OutputPath, "output", "o", "", "Single output image path")
	processCmd.Flags().StringVar(&processOpts.InputDir, "input-dir", "", "Folder to process recursively")
	processCmd.Flags().StringVar(&processOpts.OutputDir, "output-dir", "", "Output folder (mirrors structure)")
	processCmd.Flags().StringVarP(&processOpts.LogoPath, "logo", "l", "", "Logo path (PNG recommended)")
	processCmd.Flags().BoolVar(&processOpts.DryRun, "dry-run", false, "List planned operations without writing")
	processCmd.Flags().StringArrayVar(&processOpts.Excludes, "exclude", nil, "Glob pattern to exclude (can be repeated). Example: --exclude '**/logo.*'")
	processCmd.Flags().IntVar(&processOpts.DryRunLimit, "dry-run-limit", 30, "How many dry-run items to print")
	processCmd.Flags().IntVarP(&processOpts.NumEngines, "engines", "e", 1, "Number of parallel workers for batch mode")
	processCmd.Flags().BoolVar(&processOpts.Track, "track", false, "Record processed images in the ledger and skip unchanged ones")

	processCmd.Flags().Float64Var(&processOpts.Blur, "blur", defaults.BlurRadius, "Background blur radius")
	processCmd.Flags().Float64Var(&processOpts.CenterScale, "center-scale", defaults.CenterScale, "Fraction of width/height kept sharp")
	processCmd.Flags().IntVar(&processOpts.Feather, "feather", defaults.Feather, "Focus mask feather radius (px)")
	processCmd.Flags().Float64Var(&processOpts.LogoScale, "logo-scale", defaults.LogoScale, "Logo width as a fraction of image width")
	processCmd.Flags().StringVar(&processOpts.PlateStyle, "plate-style", string(defaults.PlateStyle), "Logo plate style: light, dark, frosted")
	processCmd.Flags().Float64Var(&processOpts.PlateBlur, "plate-blur", defaults.PlateBlurRadius, "Blur radius for the frosted plate")
	processCmd.Flags().IntVar(&processOpts.PlateTintAlpha, "plate-tint-alpha", int(defaults.PlateTintAlpha), "0-255. Higher = darker frosted plate")

	rootCmd.AddCommand(processCmd)
}

func runProcess(ctx context.Context, opts Options) error {
	s, err := buildSettings(opts)
	if err != nil {
		utils.ShowError("Configuration Error", err)
		return err
	}
	if err := validateProcessFlags(&opts); err != nil {
		utils.ShowError("Configuration Error", err)
		return err
	}

	// Single image mode
	if opts.InputPath != "" {
		if opts.DryRun {
			fmt.Printf("DRY-RUN: %s -> %s\n", opts.InputPath, opts.OutputPath)
			return nil
		}
		if err := pipeline.ProcessOne(opts.InputPath, opts.OutputPath, opts.LogoPath, s); err != nil {
			utils.ShowError("Processing failed", err)
			return err
		}
		fmt.Printf("Wrote: %s\n", opts.OutputPath)
		return nil
	}

	// Batch mode
	excludes := opts.Excludes
	if len(excludes) == 0 {
		// Safe defaults so the logo asset itself is never re-composited.
		excludes = []string{"logo.*", "**/logo.*"}
	}

	pairs, err := walk.Pairs(opts.InputDir, opts.OutputDir, excludes)
	if err != nil {
		utils.ShowError("Failed to scan input directory", err)
		return err
	}
	if len(pairs) == 0 {
		fmt.Fprintf(os.Stderr, "No images found in: %s\n", opts.InputDir)
		os.Exit(2)
	}

	if opts.DryRun {
		printDryRunSummary(pairs, opts.DryRunLimit)
		return nil
	}

	var db *store.Store
	if opts.Track {
		db, err = openStore(ctx)
		if err != nil {
			utils.ShowError("Ledger unavailable", err)
			return err
		}
		defer db.Close(context.Background())

		pairs, err = filterProcessed(ctx, db, pairs, s)
		if err != nil {
			utils.ShowError("Ledger lookup failed", err)
			return err
		}
		if len(pairs) == 0 {
			fmt.Fprintln(os.Stderr, "Everything already processed. Nothing to do.")
			return nil
		}
	}

	jobs := make([]types.Job, len(pairs))
	for i, p := range pairs {
		jobs[i] = types.Job{Index: i, Src: p.Src, Dst: p.Dst}
	}

	fmt.Fprintf(os.Stderr, "🎨 Processing %d images with %d workers...\n", len(jobs), opts.NumEngines)
	bar := progressbar.NewOptions(len(jobs),
		progressbar.OptionSetDescription("Composing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	failed := 0
	pool := worker.New(opts.NumEngines)
	err = pool.Run(ctx, jobs,
		func(job types.Job) error {
			return pipeline.ProcessOne(job.Src, job.Dst, opts.LogoPath, s)
		},
		func(res types.Result) {
			bar.Add(1)
			if res.Err != nil {
				failed++
				utils.ShowError(fmt.Sprintf("Failed: %s", res.Job.Src), res.Err)
				return
			}
			if db != nil {
				// onResult runs on a single goroutine, so the pgx connection
				// is never used concurrently.
				if err := recordProcessed(ctx, db, res.Job, s); err != nil {
					utils.ShowError(fmt.Sprintf("Ledger update failed: %s", res.Job.Src), err)
				}
			}
		},
	)
	bar.Finish()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n🏁 Done. Processed %d images -> %s", len(jobs)-failed, opts.OutputDir)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, " (%d failed)", failed)
	}
	fmt.Fprintln(os.Stderr)
	return nil
}

// buildSettings merges the exposed tunables into the fixed defaults.
// Unknown plate styles and out-of-range values are rejected here, before any
// image is touched.
func buildSettings(opts Options) (settings.Settings, error) {
	s := settings.Default()
	s.BlurRadius = opts.Blur
	s.CenterScale = opts.CenterScale
	s.Feather = opts.Feather
	s.LogoScale = opts.LogoScale
	s.PlateBlurRadius = opts.PlateBlur

	style, err := settings.ParsePlateStyle(opts.PlateStyle)
	if err != nil {
		return s, err
	}
	s.PlateStyle = style

	if opts.PlateTintAlpha < 0 || opts.PlateTintAlpha > 255 {
		return s, fmt.Errorf("plate tint alpha must be in [0, 255], got %d", opts.PlateTintAlpha)
	}
	s.PlateTintAlpha = uint8(opts.PlateTintAlpha)

	return s, s.Validate()
}

// validateProcessFlags ensures a consistent mode selection before starting.
func validateProcessFlags(opts *Options) error {
	single := opts.InputPath != "" && opts.OutputPath != ""
	batch := opts.InputDir != "" && opts.OutputDir != ""

	if !single && !batch {
		return fmt.Errorf("provide either --input/--output OR --input-dir/--output-dir")
	}
	if single && batch {
		return fmt.Errorf("single and batch mode are mutually exclusive")
	}

	if single {
		info, err := os.Stat(opts.InputPath)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("input file does not exist: %s", opts.InputPath)
			}
			return fmt.Errorf("unable to access input file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("input path is a directory, expected an image file (use --input-dir)")
		}
	} else {
		info, err := os.Stat(opts.InputDir)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("input directory does not exist: %s", opts.InputDir)
			}
			return fmt.Errorf("unable to access input directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("input-dir is not a directory: %s", opts.InputDir)
		}
	}

	if opts.NumEngines < 1 {
		opts.NumEngines = 1
	}
	if opts.DryRunLimit < 1 {
		opts.DryRunLimit = 1
	}
	if opts.Track && opts.DryRun {
		return fmt.Errorf("--track and --dry-run are mutually exclusive")
	}
	return nil
}

// filterProcessed drops pairs whose source content and settings fingerprint
// are already in the ledger.
func filterProcessed(ctx context.Context, db *store.Store, pairs []walk.Pair, s settings.Settings) ([]walk.Pair, error) {
	fingerprint := s.Fingerprint()
	kept := pairs[:0]
	for _, p := range pairs {
		id, err := utils.GenerateImageID(p.Src)
		if err != nil {
			return nil, err
		}
		done, err := db.IsProcessed(ctx, id, fingerprint)
		if err != nil {
			return nil, err
		}
		if !done {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

func recordProcessed(ctx context.Context, db *store.Store, job types.Job, s settings.Settings) error {
	id, err := utils.GenerateImageID(job.Src)
	if err != nil {
		return err
	}
	w, h, err := codec.Dimensions(job.Src)
	if err != nil {
		return err
	}
	return db.MarkProcessed(ctx, store.Record{
		ID:           id,
		SourcePath:   job.Src,
		OutputPath:   job.Dst,
		Width:        w,
		Height:       h,
		SettingsHash: s.Fingerprint(),
	})
}

func printDryRunSummary(pairs []walk.Pair, limit int) {
	total := len(pairs)
	fmt.Printf("DRY-RUN: %d images\n", total)
	if total == 0 {
		return
	}
	head := pairs
	if total > limit {
		head = pairs[:limit]
	}
	for _, p := range head {
		fmt.Printf("- %s -> %s\n", p.Src, p.Dst)
	}
	if total > limit {
		fmt.Printf("... (%d more not shown)\n", total-limit)
	}
}
