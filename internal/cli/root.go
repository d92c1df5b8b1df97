// SPDX-License-Identifier: MIT

// Package cli is the rasterops command tree. It resolves flags, RASTEROPS_*
// environment variables and an optional YAML config file into the
// positional parameters of the engines, runs them on a synthetic input
// grid and prints a summary of the result.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/rasterops/internal/synth"
)

// Settings shared by every command.
const (
	keyCols    = "cols"
	keyRows    = "rows"
	keySeed    = "seed"
	keySource  = "source"
	keyConn    = "conn"
	keyLevel   = "level"
	keyWorkers = "workers"
	keyDump    = "dump"
	keyInPlace = "in-place"
	keyVerbose = "verbose"
)

// Execute runs the command tree on the process arguments and exits with
// status 1 on failure.
func Execute() {
	if err := NewRootCommand(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree with every setting bound to v.
func NewRootCommand(v *viper.Viper) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "rasterops",
		Short: "Distance, drainage and labelling engines on synthetic grids",
		Long: `rasterops generates an input grid, runs one engine operation on it and
prints the shape, cell type and statistics of the result.

Settings are read from flags, RASTEROPS_* environment variables (dots and
dashes become underscores, e.g. RASTEROPS_DEM_SLOPE_ZSCALE) and the config
file, $HOME/.rasterops.yaml unless --config is given.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return initConfig(v, cfgFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rasterops.yaml)")
	pf.Int(keyCols, 64, "columns of the generated grid")
	pf.Int(keyRows, 64, "rows of the generated grid")
	pf.Int64(keySeed, 1, "seed of the uniform generator")
	pf.String(keySource, synth.SourceUniform, "input generator: "+strings.Join(synth.Sources(), ", "))
	pf.Int(keyConn, 8, "pixel connectivity, 4 or 8")
	pf.Float64(keyLevel, 128, "foreground threshold for operations that need a binary input")
	pf.Int(keyWorkers, 0, "goroutines for parallel passes (0 = GOMAXPROCS)")
	pf.Bool(keyDump, false, "print every cell of the result")
	pf.Bool(keyInPlace, false, "run the destructive form, replacing the input grid")
	pf.BoolP(keyVerbose, "v", false, "log engine stages to stderr")
	for _, key := range []string{
		keyCols, keyRows, keySeed, keySource, keyConn, keyLevel,
		keyWorkers, keyDump, keyInPlace, keyVerbose,
	} {
		_ = v.BindPFlag(key, pf.Lookup(key))
	}

	root.AddCommand(
		newGroup(v, "distance", "Distance transforms", distanceOperations()),
		newGroup(v, "dem", "Flow directions, drainage and terrain analysis", demOperations()),
		newGroup(v, "label", "Connected-component labelling", labelOperations()),
		newGroup(v, "pixops", "Point operations", pixopsOperations()),
	)

	return root
}

// initConfig reads the config file and enables environment overrides.
// A missing default config file is not an error; a missing explicit one is.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".rasterops")
	}

	v.SetEnvPrefix("RASTEROPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	return nil
}
