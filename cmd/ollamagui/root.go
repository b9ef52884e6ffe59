package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ollamagui/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	configPath string
	envFiles   []string

	addr            string
	ollamaURL       string
	ollamaBin       string
	processProbe    bool
	fallbackModels  string
	catalogURL      string
	libraryFallback bool
	defaultModel    string
	defaultLanguage string
	cors            bool
	corsOrigins     string
	logLevel        string
	logFormat       string
}

func newRootCmd() *cobra.Command { return buildRoot(&options{}) }

func buildRoot(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "ollamagui",
		Short:         "Local web proxy for chatting with Ollama models",
		Long:          "ollamagui serves a JSON API that locates a local Ollama server, browses the remote model catalog, pulls models in the background and relays chat messages.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, o)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&o.configPath, "config", "c", "", "config file (.yaml, .yml, .json, .toml); default: first of ./ollamagui.* and ~/.config/ollamagui/ollamagui.*")
	pf.StringSliceVar(&o.envFiles, "env-file", nil, "dotenv files to load before reading the environment (default ./.env)")
	pf.StringVar(&o.addr, "addr", "", "HTTP listen address, e.g. :5000")
	pf.StringVar(&o.ollamaURL, "ollama-url", "", "Ollama base URL or host[:port]")
	pf.StringVar(&o.ollamaBin, "ollama-bin", "", "path of the ollama executable")
	pf.BoolVar(&o.processProbe, "process-probe", false, "probe for a running ollama process when the API and CLI fail")
	pf.StringVar(&o.fallbackModels, "fallback-models", "", "comma-separated models reported when Ollama is unreachable")
	pf.StringVar(&o.catalogURL, "catalog-url", "", "remote catalog JSON endpoint")
	pf.BoolVar(&o.libraryFallback, "library-fallback", true, "scrape the HTML model library when the catalog API fails")
	pf.StringVar(&o.defaultModel, "default-model", "", "model used when a chat request omits one")
	pf.StringVar(&o.defaultLanguage, "default-language", "", "language used when a request omits one (pt, en, es)")
	pf.BoolVar(&o.cors, "cors", true, "enable CORS")
	pf.StringVar(&o.corsOrigins, "cors-origins", "", "comma-separated allowed CORS origins")
	pf.StringVar(&o.logLevel, "log-level", "", "trace, debug, info, warn, error or off")
	pf.StringVar(&o.logFormat, "log-format", "", "console or json")

	root.AddCommand(newServeCmd(o), newLocateCmd(o), newCategoriesCmd(o), newVersionCmd())
	return root
}

// loadConfig layers the config file, the environment and changed flags, in
// that order, and returns a defaulted, validated config.
func loadConfig(cmd *cobra.Command, o *options) (config.Config, error) {
	if err := config.LoadDotEnv(o.envFiles...); err != nil {
		return config.Config{}, err
	}
	var cfg config.Config
	path := o.configPath
	if path == "" {
		path = config.Discover()
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg, err := config.FromEnv(cfg, nil)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	str := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	str("addr", &cfg.Addr, o.addr)
	str("ollama-url", &cfg.OllamaURL, o.ollamaURL)
	str("ollama-bin", &cfg.OllamaBin, o.ollamaBin)
	str("catalog-url", &cfg.CatalogURL, o.catalogURL)
	str("default-model", &cfg.DefaultModel, o.defaultModel)
	str("default-language", &cfg.DefaultLanguage, o.defaultLanguage)
	str("log-level", &cfg.LogLevel, o.logLevel)
	str("log-format", &cfg.LogFormat, o.logFormat)
	if flags.Changed("process-probe") {
		cfg.ProcessProbe = o.processProbe
	}
	if flags.Changed("fallback-models") {
		cfg.FallbackModels = config.SplitCSV(o.fallbackModels)
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins = config.SplitCSV(o.corsOrigins)
	}
	if flags.Changed("library-fallback") {
		v := o.libraryFallback
		cfg.LibraryFallback = &v
	}
	if flags.Changed("cors") {
		v := o.cors
		cfg.CORSEnabled = &v
	}

	cfg = cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the process logger. "off" and "disabled" silence it.
func newLogger(cfg config.Config, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvlName := strings.ToLower(cfg.LogLevel)
	if lvlName == "off" {
		lvlName = "disabled"
	}
	lvl, err := zerolog.ParseLevel(lvlName)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ollamagui %s\n", version)
		},
	}
}
