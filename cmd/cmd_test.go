package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/fornellas/gcarray/bounds"
)

var singleToolPath = filepath.Join("..", "gcode", "testdata", "single_tool.nc")
var twoToolsPath = filepath.Join("..", "gcode", "testdata", "two_tools.nc")

func resetChanged(cmd *cobra.Command) {
	unset := func(f *pflag.Flag) { f.Changed = false }
	cmd.Flags().VisitAll(unset)
	cmd.PersistentFlags().VisitAll(unset)
	for _, c := range cmd.Commands() {
		resetChanged(c)
	}
}

// execute runs the root command with args, returning its output and exit code.
func execute(t *testing.T, args ...string) (string, int) {
	t.Helper()

	ResetFlags()
	resetChanged(RootCmd)

	exitCode := 0
	originalExit := Exit
	Exit = func(code int) { exitCode = code }
	t.Cleanup(func() { Exit = originalExit })

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	require.NoError(t, RootCmd.Execute())

	return out.String(), exitCode
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBounds(t *testing.T) {
	out, code := execute(t, "bounds", singleToolPath)
	require.Equal(t, 0, code)
	require.Contains(t, out, "Size: 30.000 x 15.000 x 0.000\n")
}

func TestArray(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.nc")
	_, code := execute(t, "array", singleToolPath, "--columns", "2", "--gap", "5", "-o", output)
	require.Equal(t, 0, code)

	program := readFile(t, output)
	require.Contains(t, program, "G1 X65.000 Y0.000 F500\n")
	require.Contains(t, program, "g1 x35.000 y15.000\n")
	require.Regexp(t, `\nM30\n$`, program)
}

func TestArraySpacing(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.nc")
	_, code := execute(
		t, "array", singleToolPath,
		"--rows", "2", "--columns", "1",
		"--spacing-y", "20", "--row-direction", "negative",
		"-o", output,
	)
	require.Equal(t, 0, code)
	require.Contains(t, readFile(t, output), "G1 X30.000 Y-5.000\n")
}

func TestArrayExceedsEnvelope(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.nc")
	out, code := execute(t, "array", singleToolPath, "--columns", "2", "--gap", "5", "--max-x", "50", "-o", output)
	require.Equal(t, 1, code)
	require.Contains(t, out, ErrExceedsEnvelope.Error())
	require.NoFileExists(t, output)
}

func TestArrayInvalidSkip(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.nc")
	_, code := execute(t, "array", singleToolPath, "--columns", "2", "--skip", "1,5", "-o", output)
	require.Equal(t, 1, code)
	require.NoFileExists(t, output)
}

func TestArrayEnvironment(t *testing.T) {
	t.Setenv("GCARRAY_COLUMNS", "3")
	output := filepath.Join(t.TempDir(), "out.nc")
	_, code := execute(t, "array", singleToolPath, "--gap", "5", "-o", output)
	require.Equal(t, 0, code)
	require.Contains(t, readFile(t, output), "G1 X100.000 Y0.000 F500\n")
}

func TestArrayConfig(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "gcarray.yaml")
	require.NoError(t, os.WriteFile(config, []byte("columns: 2\ngap: 10\n"), 0644))
	output := filepath.Join(dir, "out.nc")

	_, code := execute(t, "array", singleToolPath, "--config", config, "-o", output)
	require.Equal(t, 0, code)
	require.Contains(t, readFile(t, output), "G1 X70.000 Y0.000 F500\n")

	_, code = execute(t, "array", singleToolPath, "--config", config, "--gap", "20", "-o", output)
	require.Equal(t, 0, code)
	require.Contains(t, readFile(t, output), "G1 X80.000 Y0.000 F500\n")
}

func TestArrayBatch(t *testing.T) {
	dir := t.TempDir()
	_, code := execute(
		t, "array-batch", singleToolPath, twoToolsPath,
		"--columns", "2", "--sort-by-tool", "--jobs", "2", "--output-dir", dir,
	)
	require.Equal(t, 0, code)

	require.Regexp(t, `\nM30\n$`, readFile(t, filepath.Join(dir, "single_tool.array.nc")))
	require.Regexp(t, `^%\n(?s:.*)\nM30\n%\n$`, readFile(t, filepath.Join(dir, "two_tools.array.nc")))

	program := readFile(t, filepath.Join(dir, "two_tools.array.nc"))
	require.Equal(t, 1, bytes.Count([]byte(program), []byte("T1 M6")))
	require.Equal(t, 1, bytes.Count([]byte(program), []byte("T2 M6")))
}

func TestArrayBatchMissingOutputDir(t *testing.T) {
	_, code := execute(t, "array-batch", singleToolPath)
	require.Equal(t, 1, code)
}

func TestArrayBatchSameFileName(t *testing.T) {
	dir := t.TempDir()
	program := readFile(t, singleToolPath)
	var paths []string
	for _, sub := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0755))
		path := filepath.Join(dir, sub, "part.nc")
		require.NoError(t, os.WriteFile(path, []byte(program), 0644))
		paths = append(paths, path)
	}
	outputDir := filepath.Join(dir, "out")

	out, code := execute(t, "array-batch", paths[0], paths[1], "--output-dir", outputDir)
	require.Equal(t, 1, code)
	require.Contains(t, out, "part.array.nc")
	require.NoDirExists(t, outputDir)
}

func TestArrayOutputPaths(t *testing.T) {
	outputPaths, err := arrayOutputPaths("out", []string{filepath.Join("a", "part.nc"), filepath.Join("a", "other.nc")})
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		filepath.Join("a", "part.nc"):  filepath.Join("out", "part.array.nc"),
		filepath.Join("a", "other.nc"): filepath.Join("out", "other.array.nc"),
	}, outputPaths)

	_, err = arrayOutputPaths("out", []string{filepath.Join("a", "part.nc"), filepath.Join("b", "part.nc")})
	require.EqualError(t, err, fmt.Sprintf(
		"%s and %s would both be written to %s",
		filepath.Join("a", "part.nc"), filepath.Join("b", "part.nc"), filepath.Join("out", "part.array.nc"),
	))

	_, err = arrayOutputPaths("out", []string{"part.nc", "part.nc"})
	require.Error(t, err)
}

func TestArrayOutputPath(t *testing.T) {
	require.Equal(t, filepath.Join("out", "part.array.nc"), arrayOutputPath("out", filepath.Join("in", "part.nc")))
	require.Equal(t, filepath.Join("out", "part.array"), arrayOutputPath("out", "part"))
}

func TestValidateSkip(t *testing.T) {
	for _, tc := range []struct {
		name     string
		text     string
		maxParts string
		code     int
		out      string
	}{
		{name: "valid", text: "1,3", maxParts: "4", out: "Valid, skipping 2 of 4 parts: [1 3]\n"},
		{name: "range", text: "2-4", maxParts: "4", out: "Valid, skipping 3 of 4 parts: [2 3 4]\n"},
		{name: "reversed range", text: "1,5-3", maxParts: "8", code: 1},
		{name: "beyond parts", text: "5", maxParts: "4", code: 1},
		{name: "missing max parts", text: "1", maxParts: "0", code: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, code := execute(t, "validate-skip", tc.text, "--max-parts", tc.maxParts)
			require.Equal(t, tc.code, code)
			if tc.out != "" {
				require.Contains(t, out, tc.out)
			}
		})
	}
}

func TestCheckEnvelope(t *testing.T) {
	ResetFlags()
	box := bounds.Box{Max: bounds.Point{X: 65, Y: 15}}

	require.NoError(t, CheckEnvelope(box))

	maxX = 50
	err := CheckEnvelope(box)
	require.ErrorIs(t, err, ErrExceedsEnvelope)
	require.EqualError(t, err, "grid exceeds machine envelope: width 65 > X travel 50")

	maxX, maxY = 100, 10
	require.ErrorIs(t, CheckEnvelope(box), ErrExceedsEnvelope)

	maxY = 15
	require.NoError(t, CheckEnvelope(box))
}
