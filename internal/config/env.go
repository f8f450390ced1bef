package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REASONS311_"

// ApplyEnv overlays values from an optional .env file and the process
// environment onto cfg. Process variables win over the file. A missing
// envFile is not an error.
func ApplyEnv(cfg *Config, envFile string) error {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := vars[EnvPrefix+key]
		return v, ok
	}

	if v, ok := lookup("SOURCE"); ok {
		cfg.Source.Path = v
	}
	if v, ok := lookup("REASON_COLUMN"); ok {
		cfg.Source.ReasonColumn = v
	}
	if v, ok := lookup("COUNT_COLUMN"); ok {
		cfg.Source.CountColumn = v
	}
	if v, ok := lookup("TOP_N"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %sTOP_N %q: %w", EnvPrefix, v, err)
		}
		cfg.Source.TopN = n
	}
	if v, ok := lookup("FETCH_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %sFETCH_TIMEOUT %q: %w", EnvPrefix, v, err)
		}
		cfg.Source.FetchTimeout = d
	}
	if v, ok := lookup("OUTPUT"); ok {
		cfg.Output.Path = v
	}
	if v, ok := lookup("FORMAT"); ok {
		cfg.Output.Format = v
	}
	if v, ok := lookup("TITLE"); ok {
		cfg.Chart.Title.Text = v
	}
	return nil
}
