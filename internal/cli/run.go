// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/rasterops/dem"
	"github.com/katalvlaran/rasterops/distance"
	"github.com/katalvlaran/rasterops/grid"
	"github.com/katalvlaran/rasterops/internal/synth"
)

// engine is the functional shape every operation reduces to.
type engine func(*grid.Grid) (*grid.Grid, error)

// operation describes one leaf command.
type operation struct {
	name  string
	short string
	// flags registers the operation's own flags; they are bound to the
	// settings "<group>.<name>.<flag>".
	flags func(fs *pflag.FlagSet)
	// build turns the resolved settings into an engine. Auxiliary inputs
	// that do not depend on the grid being transformed are derived here.
	build func(r *run, in *grid.Grid) (engine, error)
}

// run holds the resolved settings of one invocation.
type run struct {
	v      *viper.Viper
	prefix string
	conn   grid.Connectivity
	log    *slog.Logger
}

// Accessors for the operation's own settings.
func (r *run) floatOpt(name string) float64 { return r.v.GetFloat64(r.prefix + name) }
func (r *run) intOpt(name string) int       { return r.v.GetInt(r.prefix + name) }
func (r *run) boolOpt(name string) bool     { return r.v.GetBool(r.prefix + name) }
func (r *run) stringOpt(name string) string { return r.v.GetString(r.prefix + name) }

// level is the shared foreground threshold.
func (r *run) level() float64 { return r.v.GetFloat64(keyLevel) }

// stages reports dem stages at debug level.
func (r *run) stages() dem.Option {
	return dem.WithOnStage(func(stage string) { r.log.Debug("stage done", "stage", stage) })
}

// passes configures the distance workers and reports each pass.
func (r *run) passes() []distance.Option {
	return []distance.Option{
		distance.WithWorkers(r.v.GetInt(keyWorkers)),
		distance.WithOnPass(func(pass string) { r.log.Debug("pass done", "pass", pass) }),
	}
}

func newGroup(v *viper.Viper, name, short string, ops []operation) *cobra.Command {
	group := &cobra.Command{Use: name, Short: short}
	for _, op := range ops {
		group.AddCommand(newOperation(v, name, op))
	}
	return group
}

func newOperation(v *viper.Viper, group string, op operation) *cobra.Command {
	prefix := group + "." + op.name + "."
	cmd := &cobra.Command{
		Use:   op.name,
		Short: op.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, v, prefix, op)
		},
	}
	if op.flags != nil {
		op.flags(cmd.Flags())
	}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(prefix+f.Name, f)
	})
	return cmd
}

// execute generates the input, runs the operation in its functional or
// destructive form and writes the report to the command's output.
func execute(cmd *cobra.Command, v *viper.Viper, prefix string, op operation) error {
	name := strings.TrimSuffix(prefix, ".")
	level := slog.LevelInfo
	if v.GetBool(keyVerbose) {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With("op", name)
	if file := v.ConfigFileUsed(); file != "" {
		log.Debug("config", "file", file)
	}

	conn, err := grid.ParseConnectivity(v.GetInt(keyConn))
	if err != nil {
		return err
	}
	in, err := synth.Generate(v.GetString(keySource), v.GetInt(keyCols), v.GetInt(keyRows), v.GetInt64(keySeed))
	if err != nil {
		return err
	}
	log.Debug("input", "source", v.GetString(keySource), "cols", in.Cols(), "rows", in.Rows(), "type", in.DataType())

	r := &run{v: v, prefix: prefix, conn: conn, log: log}
	eng, err := op.build(r, in)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	start := time.Now()
	out := in
	if v.GetBool(keyInPlace) {
		err = grid.Apply(in, eng)
	} else {
		out, err = eng(in)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Debug("done", "elapsed", time.Since(start), "in-place", v.GetBool(keyInPlace))

	report(cmd.OutOrStdout(), name, out, v.GetBool(keyDump))
	return nil
}

// report prints one summary line and, with dump, every row of every plane.
func report(w io.Writer, name string, g *grid.Grid, dump bool) {
	st := g.Stats(0)
	fmt.Fprintf(w, "%s: %dx%dx%d %v min=%g max=%g mean=%.4f count=%d\n",
		name, g.Cols(), g.Rows(), g.Planes(), g.DataType(), st.Min, st.Max, st.Mean, st.Count)
	if !dump {
		return
	}
	row := make([]string, g.Cols())
	for z := 0; z < g.Planes(); z++ {
		if z > 0 {
			fmt.Fprintln(w)
		}
		for y := 0; y < g.Rows(); y++ {
			for x := range row {
				row[x] = strconv.FormatFloat(g.At3(x, y, z), 'g', -1, 64)
			}
			fmt.Fprintln(w, strings.Join(row, " "))
		}
	}
}
