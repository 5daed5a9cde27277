package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"diffwrite/internal/apply"
	"diffwrite/internal/diff"
	"diffwrite/internal/render"
	"diffwrite/internal/source"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitIO    = 1
	ExitUsage = 2
)

type Config struct {
	Path    string
	Label   string
	Context int
	NoColor bool
	DryRun  bool
	Backup  bool
	Verbose bool
}

var errHelp = errors.New("help requested")

func parseArgs(args []string, stderr io.Writer) (Config, error) {
	var cfg Config
	fs := pflag.NewFlagSet("diffwrite", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: diffwrite [flags] FILE < new-content")
		fmt.Fprintln(stderr, "Shows a unified diff between FILE and standard input, then writes standard input to FILE.")
		fs.PrintDefaults()
	}

	fs.IntVarP(&cfg.Context, "context", "c", diff.DefaultContext, "Number of context lines to show")
	fs.StringVar(&cfg.Label, "label", "", "Name shown in the diff headers (default: FILE)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable ANSI colors in output (also set by NO_COLOR)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Show the diff without writing FILE")
	fs.BoolVar(&cfg.Backup, "backup", false, "Create a backup of FILE before writing")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log progress to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return cfg, errHelp
		}
		return cfg, err
	}

	if fs.NArg() != 1 {
		return cfg, errors.New("exactly one FILE argument is required")
	}
	if cfg.Context < 0 {
		return cfg, errors.Errorf("--context must not be negative, got %d", cfg.Context)
	}
	cfg.Path = fs.Arg(0)
	if cfg.Label == "" {
		cfg.Label = cfg.Path
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	return cfg, nil
}

func newLogger(stderr io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// Run executes the CLI with the provided args and streams, returning the exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err == errHelp {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	log := newLogger(stderr, cfg.Verbose)

	if err := run(cfg, stdin, stdout, log); err != nil {
		log.WithField("path", cfg.Path).Debugf("%+v", err)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitIO
	}
	return ExitOK
}

func run(cfg Config, stdin io.Reader, stdout io.Writer, log *logrus.Logger) error {
	before, err := source.ReadFile(cfg.Path)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":   cfg.Path,
		"exists": before.Exists,
		"bytes":  len(before.Text),
	}).Debug("Read current content")

	after, err := source.ReadAll(stdin)
	if err != nil {
		return err
	}
	log.WithField("bytes", len(after)).Debug("Read replacement content")

	res := diff.Text(before.Text, after, diff.Options{
		Context: cfg.Context,
		Labels:  diff.Labels{Old: cfg.Label, New: cfg.Label},
	})
	log.WithFields(logrus.Fields{
		"ops":     len(res.Ops),
		"hunks":   len(res.Hunks),
		"context": cfg.Context,
	}).Debug("Computed diff")

	if err := render.New(!cfg.NoColor).Render(stdout, res.Unified); err != nil {
		log.WithField("err", err).Warn("Could not print diff")
	}

	if cfg.DryRun {
		log.WithField("path", cfg.Path).Debug("Dry run, not writing")
		return nil
	}
	out, err := apply.WriteAtomic(cfg.Path, []byte(after), apply.Options{Backup: cfg.Backup})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":    cfg.Path,
		"created": out.Created,
		"backup":  out.BackupPath,
	}).Debug("Wrote new content")
	return nil
}
