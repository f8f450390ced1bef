package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/civicviz/reasons311/internal/buildinfo"
	"github.com/civicviz/reasons311/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose    bool
	configPath string
	envFile    string

	// buildLogger is swapped out in tests.
	buildLogger func(verbose bool) (*zap.Logger, error)
	logger      *zap.Logger
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

// Execute runs the CLI with os.Args and flushes the logger whether or not
// the command succeeded.
func Execute() error {
	g := &globalFlags{buildLogger: productionLogger}
	return execute(newRootCommand(g), g)
}

func execute(rootCmd *cobra.Command, g *globalFlags) error {
	err := rootCmd.Execute()
	if g.logger != nil {
		_ = g.logger.Sync()
	}
	return err
}

// newRootCommand creates the root CLI command with all subcommands registered.
func newRootCommand(g *globalFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "reasons311",
		Short:   "Chart the most common 311 service-request reasons",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := g.buildLogger(g.verbose)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			g.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ./"+config.FileName+" if present)")
	rootCmd.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "dotenv file with "+config.EnvPrefix+"* overrides")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRenderCommand(g))
	rootCmd.AddCommand(newTopCommand(g))

	return rootCmd
}

// loadConfig resolves the config file, then applies env overrides.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case g.configPath != "":
		c, err := config.Load(g.configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	default:
		c, err := config.Load(config.FileName)
		switch {
		case err == nil:
			cfg = c
		case errors.Is(err, fs.ErrNotExist):
			cfg = config.Default()
		default:
			return nil, err
		}
	}

	if err := config.ApplyEnv(cfg, g.envFile); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}
	return cfg, nil
}

func (g *globalFlags) log() *zap.Logger {
	if g.logger == nil {
		return zap.NewNop()
	}
	return g.logger
}
