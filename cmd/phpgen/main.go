package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bjaus/phpgen"
)

const version = "0.1.0"

type options struct {
	configPath     string
	outputPath     string
	logLevel       string
	tabWidth       int
	maxLineLength  int
	precision      int
	spaces         bool
	longArrays     bool
	oneLineStrings bool
	serialKeys     bool
	noFormat       bool
	noTail         bool
	script         bool
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:     "phpgen [file]",
		Short:   "Convert a YAML or JSON document to PHP code",
		Long:    "Reads a YAML or JSON document from a file or stdin and prints it as a PHP array literal.",
		Args:    cobra.MaximumNArgs(1),
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			// A failed run leaves --output untouched.
			var buf bytes.Buffer
			if err := run(cmd, opts, in, &buf); err != nil {
				return err
			}
			if opts.outputPath == "" {
				_, err := buf.WriteTo(stdout)
				return err
			}
			return os.WriteFile(opts.outputPath, buf.Bytes(), 0o644)
		},
	}
	cmd.SilenceUsage = true

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", os.Getenv("PHPGEN_CONFIG"), "Path to a YAML layout config")
	f.StringVarP(&opts.outputPath, "output", "o", "", "Write code to this file instead of stdout")
	f.StringVar(&opts.logLevel, "log-level", envOr("PHPGEN_LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")
	f.IntVar(&opts.tabWidth, "tab-width", 4, "Indentation width")
	f.IntVar(&opts.maxLineLength, "max-line-length", 60, "Line length for one-element arrays")
	f.IntVar(&opts.precision, "precision", -1, "Float significant digits (-1 for shortest exact form)")
	f.BoolVar(&opts.spaces, "spaces", false, "Indent with spaces instead of tabs")
	f.BoolVar(&opts.longArrays, "long-arrays", false, "Use array() instead of []")
	f.BoolVar(&opts.oneLineStrings, "one-line-strings", false, "Escape tabs and newlines in strings")
	f.BoolVar(&opts.serialKeys, "serial-keys", false, "Print keys of 0..n-1 indexed arrays")
	f.BoolVar(&opts.noFormat, "no-format", false, "Print everything on one line")
	f.BoolVar(&opts.noTail, "no-tail", false, "Omit the trailing semicolon")
	f.BoolVar(&opts.script, "script", false, "Print a PHP file returning the value")

	return cmd
}

func run(cmd *cobra.Command, opts *options, in io.Reader, out io.Writer) error {
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, &cfg)

	g, err := phpgen.New(phpgen.WithConfig(cfg), phpgen.WithLogger(logger))
	if err != nil {
		return err
	}

	doc, err := phpgen.DecodeDocument(bufio.NewReader(in))
	if err != nil {
		return err
	}
	logger.Debug("decoded document", zap.String("type", fmt.Sprintf("%T", doc)))

	if opts.script {
		return g.WriteScript(out, doc)
	}
	code, err := g.Encode(doc, 0, opts.noFormat, opts.noTail)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, code)
	return err
}

func loadConfig(path string) (phpgen.Config, error) {
	if path == "" {
		return phpgen.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return phpgen.Config{}, err
	}
	defer f.Close()
	return phpgen.LoadConfig(f)
}

// applyFlags overrides config file values with flags set on the command line.
func applyFlags(cmd *cobra.Command, opts *options, cfg *phpgen.Config) {
	f := cmd.Flags()
	if f.Changed("tab-width") {
		cfg.TabWidth = opts.tabWidth
	}
	if f.Changed("max-line-length") {
		cfg.MaxLineLength = opts.maxLineLength
	}
	if f.Changed("precision") {
		cfg.Precision = opts.precision
	}
	if f.Changed("spaces") {
		cfg.UseSpaces = opts.spaces
	}
	if f.Changed("long-arrays") {
		cfg.ShortArraySyntax = !opts.longArrays
	}
	if f.Changed("one-line-strings") {
		cfg.OneLineStrings = opts.oneLineStrings
	}
	if f.Changed("serial-keys") {
		cfg.OutputSerialKeys = opts.serialKeys
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
