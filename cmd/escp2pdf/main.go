// Command escp2pdf interprets an ESC/P or ESC/P2 printer command stream
// onto an in-memory recording surface and writes a one-line summary of
// the pages and draw operations it produced. It does not write a PDF
// file: no PDF backend is wired in.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/doswriter/escp2pdf/internal/config"
	"github.com/doswriter/escp2pdf/internal/encoding"
	"github.com/doswriter/escp2pdf/internal/fontresolver"
	"github.com/doswriter/escp2pdf/internal/graphics"
	"github.com/doswriter/escp2pdf/internal/interpreter"
	"github.com/doswriter/escp2pdf/internal/layout"
	"github.com/doswriter/escp2pdf/internal/logging"
	"github.com/doswriter/escp2pdf/internal/surface"
	"github.com/doswriter/escp2pdf/internal/typography"
	"github.com/doswriter/escp2pdf/internal/units"
	"github.com/doswriter/escp2pdf/internal/userdict"
)

func main() {
	app := &cli.App{
		Name:  "escp2pdf",
		Usage: "interpret an ESC/P or ESC/P2 command stream and summarise the pages and draw operations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "-", Usage: "output file, or - for stdout"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "configuration file path"},
			&cli.IntFlag{Name: "pins", Usage: "print head pin count (9, 24, 48); 0 keeps the configured default"},
			&cli.BoolFlag{Name: "single_sheets", Value: true, Usage: "single-sheet paper feed"},
			&cli.StringFlag{Name: "db", Usage: "user-defined character mapping file path"},
			&cli.BoolFlag{Name: "v", Usage: "verbose logging"},
		},
		Args:      true,
		ArgsUsage: "input-file",
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "escp2pdf:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	input := c.Args().First()
	if input == "" {
		input = "-"
	}

	level := "info"
	if c.Bool("v") {
		level = "debug"
	}
	logOpts := logging.DefaultOptions()
	logOpts.Level = level
	logger, err := logging.New(logOpts)
	if err != nil {
		return fmt.Errorf("escp2pdf: setting up logging: %w", err)
	}
	defer logger.Sync()

	cfg, err := loadConfig(c.String("config"), logger)
	if err != nil {
		return err
	}

	registry := encoding.NewRegistry()
	fonts := fontresolver.New(cfg.Typefaces, logger)

	dbPath := c.String("db")
	if dbPath == "" {
		dbPath = cfg.UserDefinedCharacters.DatabaseFilepath
	}
	dict, err := userdict.Open(dbPath, cfg.UserDefinedCharacters.ImagesPath)
	if err != nil {
		return fmt.Errorf("escp2pdf: opening user-defined character store: %w", err)
	}

	opts, err := buildOptions(cfg, c, registry, fonts, dict, logger)
	if err != nil {
		return err
	}

	in, err := openInput(input)
	if err != nil {
		return fmt.Errorf("escp2pdf: opening input: %w", err)
	}
	defer in.Close()

	surf := surface.NewRecorder()
	ip, err := interpreter.New(surf, opts)
	if err != nil {
		return fmt.Errorf("escp2pdf: %w", err)
	}
	if err := ip.Run(in); err != nil {
		return fmt.Errorf("escp2pdf: %w", err)
	}

	if err := dict.Flush(); err != nil {
		logger.Warn("failed to flush user-defined character mapping", zap.Error(err))
	}

	return writeOutput(c.String("output"), surf)
}

func loadConfig(path string, logger *zap.Logger) (*config.Config, error) {
	if path == "" {
		return &config.Config{Typefaces: map[string]config.FontSpec{}}, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("escp2pdf: loading configuration: %w", err)
	}
	logger.Debug("configuration loaded", zap.String("path", path))
	return cfg, nil
}

func buildOptions(cfg *config.Config, c *cli.Context, registry *encoding.Registry, fonts *fontresolver.Resolver, dict *userdict.Store, logger *zap.Logger) (interpreter.Options, error) {
	widthPt, heightPt, err := config.ResolvePageSize(cfg.Misc.PageSize)
	if err != nil {
		widthPt, heightPt = 612, 792 // US Letter, the format's own ultimate fallback
	}

	pins := cfg.Misc.Pins
	if p := c.Int("pins"); p != 0 {
		pins = p
	}
	if pins == 0 {
		pins = 24
	}

	renderer := graphics.RendererDots
	if cfg.Misc.Renderer == "rectangles" {
		renderer = graphics.RendererRectangles
	}

	fallback := typography.CondensedFallbackAuto
	if cfg.Misc.CondensedFallback == "yes" {
		fallback = typography.CondensedFallbackYes
	}

	singleSheets := cfg.Misc.SingleSheets
	if c.IsSet("single_sheets") {
		singleSheets = c.Bool("single_sheets")
	}

	marginSub := func(mm float64) units.Subunit { return units.FromMillimeters(mm) }

	return interpreter.Options{
		Paper: layout.Paper{WidthPt: widthPt, HeightPt: heightPt, SingleSheet: singleSheets},
		Margins: layout.Margins{
			Top:    marginSub(cfg.Misc.MarginTopMM),
			Bottom: units.Subunit(heightPt/units.PointsPerInch*float64(units.PerInch)) - marginSub(cfg.Misc.MarginBottomMM),
			Left:   marginSub(cfg.Misc.MarginLeftMM),
			Right:  units.Subunit(widthPt/units.PointsPerInch*float64(units.PerInch)) - marginSub(cfg.Misc.MarginRightMM),
		},
		LineSpacing:       units.FromInchFraction(1, 6),
		DefinedUnit:       units.FromInchFraction(1, 60),
		AutomaticLinefeed: cfg.Misc.AutomaticLinefeed,
		Pins:              pins,
		Renderer:          renderer,
		CondensedFallback: fallback,
		Fonts:             fonts,
		UserDict:          dict,
		Registry:          registry,
		DefaultTableName:  "PC437",
		Logger:            logger,
	}, nil
}

func openInput(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func writeOutput(path string, surf *surface.Recorder) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprintf(os.Stdout, "%d page(s), %d draw op(s)\n", surf.Pages, len(surf.Ops))
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("escp2pdf: creating output: %w", err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%d page(s), %d draw op(s)\n", surf.Pages, len(surf.Ops))
	return err
}
