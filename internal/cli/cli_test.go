// SPDX-License-Identifier: MIT

package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rasterops/grid"
	"github.com/katalvlaran/rasterops/internal/cli"
	"github.com/katalvlaran/rasterops/internal/synth"
)

// runCLI executes a fresh command tree and returns stdout and stderr.
// HOME points at an empty directory so no user config leaks in.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := cli.NewRootCommand(viper.New())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommands_Dump(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "blank",
			args: []string{"--cols", "3", "--rows", "2", "--dump", "pixops", "blank", "--value", "7"},
			want: "pixops.blank: 3x2x1 Uint8 min=7 max=7 mean=7.0000 count=6\n" +
				"7 7 7\n7 7 7\n",
		},
		{
			name: "d8 on ramp",
			args: []string{"--source", "ramp", "--cols", "4", "--rows", "3", "--dump", "dem", "d8"},
			want: "dem.d8: 4x3x1 Uint8 min=0 max=8 mean=5.1667 count=12\n" +
				"8 8 8 4\n8 8 8 4\n2 2 2 0\n",
		},
		{
			name: "d4 on frame",
			args: []string{"--source", "frame", "--cols", "5", "--rows", "5", "--level", "1", "--dump", "distance", "d4"},
			want: "distance.d4: 5x5x1 Uint32 min=0 max=2 mean=0.4000 count=25\n" +
				"0 0 0 0 0\n0 1 1 1 0\n0 1 2 1 0\n0 1 1 1 0\n0 0 0 0 0\n",
		},
		{
			name: "components on frame",
			args: []string{"--source", "frame", "--cols", "5", "--rows", "4", "--level", "1", "--dump", "label", "components"},
			want: "label.components: 5x4x1 Uint32 min=0 max=1 mean=0.3000 count=20\n" +
				"0 0 0 0 0\n0 1 1 1 0\n0 1 1 1 0\n0 0 0 0 0\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runCLI(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestCommands_InPlaceMatchesFunctional(t *testing.T) {
	commands := [][]string{
		{"distance", "sqeuclidean"},
		{"distance", "geodesic"},
		{"distance", "influence", "--seed-level", "240"},
		{"dem", "flow"},
		{"dem", "carve"},
		{"dem", "optimal", "--mode", "area"},
		{"dem", "strahler"},
		{"dem", "catchment", "--confluence"},
		{"dem", "hillshade"},
		{"label", "alpha", "--alpha", "16"},
		{"label", "variance"},
		{"label", "seeded", "--stride", "4"},
		{"pixops", "convert", "--type", "int16", "--scale", "-1"},
		{"pixops", "sobel", "--axis", "y"},
	}
	for _, c := range commands {
		t.Run(c[0]+" "+c[1], func(t *testing.T) {
			base := []string{"--cols", "16", "--rows", "12", "--seed", "3", "--dump"}
			functional, _, err := runCLI(t, append(base, c...)...)
			require.NoError(t, err)
			inPlace, _, err := runCLI(t, append(append(base, "--in-place"), c...)...)
			require.NoError(t, err)
			assert.Equal(t, functional, inPlace)
		})
	}
}

func TestCommands_EverySourceRunsEveryDEMCommand(t *testing.T) {
	ops := []string{
		"d8", "dinf", "flood", "flats", "resolve", "flow", "cda", "cdainf",
		"strat", "carve", "optimal", "minima", "slope", "slope-d8", "slope-dinf",
		"hillshade", "strahler", "catchment",
	}
	for _, src := range synth.Sources() {
		for _, op := range ops {
			t.Run(src+"/"+op, func(t *testing.T) {
				out, _, err := runCLI(t, "--source", src, "--cols", "9", "--rows", "7", "dem", op)
				require.NoError(t, err)
				assert.Contains(t, out, "dem."+op+": 9x7x1")
			})
		}
	}
}

func TestCommands_DInfAccumulationOnNoise(t *testing.T) {
	for _, seed := range []string{"21", "24"} {
		out, _, err := runCLI(t, "--cols", "64", "--rows", "64", "--seed", seed, "dem", "cdainf")
		require.NoError(t, err, "seed %s", seed)
		assert.Contains(t, out, "dem.cdainf: 64x64x1 Float32")
	}
}

func TestConfigAndEnvironment(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "rasterops.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("cols: 3\nrows: 2\npixops:\n  blank:\n    value: 9\n"), 0o600))

	out, _, err := runCLI(t, "--config", cfg, "pixops", "blank")
	require.NoError(t, err)
	assert.Equal(t, "pixops.blank: 3x2x1 Uint8 min=9 max=9 mean=9.0000 count=6\n", out)

	t.Setenv("RASTEROPS_PIXOPS_BLANK_VALUE", "5")
	out, _, err = runCLI(t, "--config", cfg, "pixops", "blank")
	require.NoError(t, err)
	assert.Contains(t, out, "min=5 max=5")

	// flags win over environment and config
	out, _, err = runCLI(t, "--config", cfg, "--cols", "4", "pixops", "blank", "--value", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "4x2x1 Uint8 min=2 max=2")

	_, _, err = runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "pixops", "blank")
	assert.Error(t, err)
}

func TestVerboseLogsStages(t *testing.T) {
	_, stderr, err := runCLI(t, "-v", "--cols", "8", "--rows", "8", "dem", "flow")
	require.NoError(t, err)
	assert.Contains(t, stderr, "op=dem.flow")
	assert.Contains(t, stderr, "stage=flood")
	assert.Contains(t, stderr, "stage=accumulate")

	_, stderr, err = runCLI(t, "--cols", "8", "--rows", "8", "dem", "flow")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	_, stderr, err = runCLI(t, "--cols", "8", "--rows", "8", "label", "components", "--sizes")
	require.NoError(t, err)
	assert.Contains(t, stderr, `msg="component sizes"`)
}

func TestCommands_Errors(t *testing.T) {
	_, _, err := runCLI(t, "--conn", "6", "dem", "d8")
	assert.ErrorIs(t, err, grid.ErrConnectivity)

	_, _, err = runCLI(t, "--source", "noise", "dem", "d8")
	assert.ErrorIs(t, err, synth.ErrSource)

	_, _, err = runCLI(t, "--conn", "4", "dem", "flownew")
	assert.ErrorIs(t, err, grid.ErrConnectivity)

	_, _, err = runCLI(t, "pixops", "bitwise", "--op", "nand")
	assert.ErrorIs(t, err, grid.ErrBitOp)

	_, _, err = runCLI(t, "pixops", "convert", "--type", "complex64")
	assert.ErrorIs(t, err, grid.ErrDataType)

	_, _, err = runCLI(t, "pixops", "threshold", "--value", "high")
	assert.ErrorContains(t, err, "value")

	_, _, err = runCLI(t, "dem", "optimal", "--mode", "volume")
	assert.ErrorContains(t, err, "volume")

	_, _, err = runCLI(t, "dem", "d8", "extra")
	assert.Error(t, err)
}
