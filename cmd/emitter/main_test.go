package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/dataset"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func withInteractive(t *testing.T, v bool) {
	t.Helper()
	prev := isInteractive
	isInteractive = func() bool { return v }
	t.Cleanup(func() { isInteractive = prev })
}

func TestEncodeCmd_Flags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tests", "mensaje.txt")

	out, err := run(t, "", "encode", "--bits", "1011", "--algorithm", "hamming", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Nuevo mensaje (hamming): 01100110")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "01100110", string(data))
}

func TestEncodeCmd_Interactive(t *testing.T) {
	withInteractive(t, true)
	path := filepath.Join(t.TempDir(), "mensaje.txt")

	_, err := run(t, "10x\n00000001\n2\n", "encode", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "000000010000000100000001", string(data))
}

func TestEncodeCmd_InvalidBits(t *testing.T) {
	_, err := run(t, "", "encode", "--bits", "10a", "--algorithm", "fletcher16", "--out", filepath.Join(t.TempDir(), "m.txt"))
	assert.Error(t, err)
}

func TestSendCmd_DryRun(t *testing.T) {
	out, err := run(t, "", "send", "--dry-run", "-m", "Hi", "-a", "fletcher16", "-k", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"algorithm": "fletcher16"`)
	assert.Contains(t, out, `"original_len": 32`)
	assert.Contains(t, out, `"flips": 2`)
	assert.Contains(t, out, "Ruido aplicado: 2 bit(s)")
}

func TestSendCmd_InteractiveDryRun(t *testing.T) {
	withInteractive(t, true)

	out, err := run(t, "\nA\nn\n", "send", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Algoritmo seleccionado: hamming")
	assert.Contains(t, out, "Bits de paridad: 4")
	assert.Contains(t, out, `"enabled": false`)
}

func TestSendCmd_RequiresMessageWhenPiped(t *testing.T) {
	withInteractive(t, false)

	_, err := run(t, "", "send", "--dry-run")
	assert.Error(t, err)
}

func TestSendCmd_TooManyFlips(t *testing.T) {
	_, err := run(t, "", "send", "--dry-run", "-m", "A", "-k", "100")
	assert.Error(t, err)
}

func TestDatasetCmd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "emitter.yaml")
	output := filepath.Join(dir, "results", "emisor_data.csv.zst")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
dataset:
  seed: 11
  workers: 3
  plan:
    algorithms: [hamming, fletcher16]
    data_sizes: [16]
    error_probabilities: [0, 0.1]
    iterations: 2
`), 0o644))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", cfgPath, "--log-level", "error",
		"--metrics-file", filepath.Join(dir, "emitter.prom"),
		"dataset", "--output", output, "--compress"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	records, err := dataset.ReadFile(output, true)
	require.NoError(t, err)
	assert.Len(t, records, 1+2*1*2*2)
	assert.Contains(t, out.String(), "Registros: 4")

	prom, err := os.ReadFile(filepath.Join(dir, "emitter.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `emitter_dataset_rows_total{algorithm="hamming"} 4`)
}

func TestChannelCmd(t *testing.T) {
	out, err := run(t, "", "channel", "-m", "Hi", "--ber", "0.1", "-n", "50", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Iteraciones: 50")
	assert.Contains(t, out, "hamming (22 bits por trama)")

	_, err = run(t, "", "channel", "--ber", "2")
	assert.Error(t, err)
}
