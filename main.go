package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cj3636/gradblame/internal/annotate"
	"github.com/cj3636/gradblame/internal/config"
	"github.com/cj3636/gradblame/internal/export"
	"github.com/cj3636/gradblame/internal/logging"
	"github.com/cj3636/gradblame/internal/preview"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

const version = "0.2.0"

var (
	paletteArg   string
	showVersion  bool
	verbose      bool
	listPalettes bool
	help         bool
	exportFormat string
	exportFile   string
	exportCopy   bool
)

// errUsage marks a command line that is missing required inputs.
var errUsage = errors.New("expected <revision-list> <blame> <listing>")

func init() {
	flag.StringVarP(&paletteArg, "g", "g", "0", "Color palette index (see --list-palettes)")
	flag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flag.BoolVar(&verbose, "verbose", false, "Log skipped lines and unknown revisions to stderr")
	flag.BoolVar(&listPalettes, "list-palettes", false, "Preview the built-in palettes and exit")
	flag.StringVar(&exportFormat, "export-format", "", "Export as ansi, html, or markdown")
	flag.StringVar(&exportFile, "export-file", "", "Write the export to the provided file path")
	flag.BoolVar(&exportCopy, "export-copy", false, "Copy the export to your clipboard")
	flag.BoolVarP(&help, "help", "h", false, "Show help information")
	flag.Usage = func() { usage(os.Stderr) }
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "gradblame - color a pretty-printed listing by the age of each line")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  gradblame [options] <revision-list> <blame> <listing>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Inputs:")
	fmt.Fprintln(w, "  revision-list  one revision per line, oldest first")
	fmt.Fprintln(w, "  blame          one '<change> <revision>' line per source line")
	fmt.Fprintln(w, "  listing        the pretty-printed source, line-aligned with blame")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  git rev-list --reverse HEAD -- main.go > revs")
	fmt.Fprintln(w, "  git blame -s main.go | awk '{print $2, $1}' > blame")
	fmt.Fprintln(w, "  bat --color=always --plain main.go > listing")
	fmt.Fprintln(w, "  gradblame -g 2 revs blame listing | less -R")
}

// run annotates the three inputs and writes the result to stdout, or to the
// export targets when any are configured.
func run(cfg *config.Config, paths []string, stdout io.Writer, log logrus.FieldLogger) error {
	if len(paths) < 3 || paths[0] == "" || paths[1] == "" || paths[2] == "" {
		return errUsage
	}
	if len(paths) > 3 {
		log.WithField("ignored", paths[3:]).Debug("extra arguments ignored")
	}

	engine := annotate.NewEngine(cfg.Palette, log)
	result, err := engine.AnnotateFiles(paths[0], paths[1], paths[2])
	if err != nil {
		return err
	}

	annotated, unknown, skipped := result.GetStats()
	log.WithFields(logrus.Fields{
		"palette":   cfg.Palette.Name,
		"revisions": result.RevisionCount,
		"lines":     annotated,
		"unknown":   unknown,
		"skipped":   skipped,
	}).Debug("annotated listing")

	if !cfg.Export.Enabled() {
		return export.WriteANSI(stdout, result)
	}
	return runExport(cfg.Export, result, stdout)
}

func runExport(opts config.ExportOptions, result *annotate.Result, stdout io.Writer) error {
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	rendered, err := export.Render(result, format, export.Options{
		Title: export.DefaultTitle(result),
	})
	if err != nil {
		return fmt.Errorf("exporting listing: %w", err)
	}

	if opts.File != "" {
		if err := os.WriteFile(opts.File, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Fprintf(stdout, "Annotated listing saved to %s\n", opts.File)
	}

	if opts.Copy {
		if err := export.CopyToClipboard(rendered, nil); err != nil {
			return fmt.Errorf("copying export to clipboard: %w", err)
		}
		fmt.Fprintln(stdout, "Annotated listing copied to clipboard.")
	}

	if opts.File == "" && !opts.Copy {
		_, err = io.WriteString(stdout, rendered)
		return err
	}
	return nil
}

func main() {
	flag.Parse()

	if help {
		usage(os.Stdout)
		os.Exit(0)
	}

	if showVersion {
		fmt.Println("gradblame version " + version)
		os.Exit(0)
	}

	log := logging.New(verbose, os.Stderr)

	if listPalettes {
		if err := preview.WritePalettes(os.Stdout, preview.DefaultSteps); err != nil {
			log.WithError(err).Error("listing palettes")
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg := config.DefaultConfig()
	cfg.SetPalette(paletteArg)
	cfg.Verbose = verbose
	cfg.Export = config.ExportOptions{
		Format: exportFormat,
		File:   exportFile,
		Copy:   exportCopy,
	}
	if paletteArg != "0" && cfg.PaletteIndex == 0 {
		log.WithField("g", paletteArg).Debug("palette index out of range, using 0")
	}

	if err := run(cfg, flag.Args(), os.Stdout, log); err != nil {
		if errors.Is(err, errUsage) {
			log.Error(err)
			usage(os.Stderr)
			os.Exit(2)
		}
		log.WithError(err).Error("cannot annotate listing")
		os.Exit(1)
	}
}
