package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bloomify/beatforge/cmd/beatforge/internal/config"
)

// setupTestEnv points the config (and cache) directory at a fresh temp dir.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvDir, dir)
	return dir
}

func runCmd(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	verbose = false

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	var outBuf, errBuf bytes.Buffer
	outBuf.ReadFrom(rOut)
	errBuf.ReadFrom(rErr)

	stdout = outBuf.String()
	stderr = errBuf.String()
	if err != nil {
		exitCode = 1
		if stderr == "" {
			stderr = err.Error()
		}
	}

	resetFlags(rootCmd)
	return
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		f.Value.Set(f.DefValue)
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeSong creates a dummy audio file plus an analysis sidecar describing a
// synthetic track: five beats on a 0.5s grid (sr=1000, hop=100), every beat
// frame loud. Returns the audio path.
func writeSong(t *testing.T, dir, name string, onsets []float64) string {
	t.Helper()

	audio := filepath.Join(dir, name+".wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	rms := make([]float64, 21)
	for i := range rms {
		rms[i] = 0.1
	}
	for _, f := range []int{0, 5, 10, 15, 20} {
		rms[f] = 1.0
	}
	doc := map[string]any{
		"bpm":         120.0,
		"sample_rate": 1000,
		"hop_length":  100,
		"beat_times":  []float64{0.0, 0.5, 1.0, 1.5, 2.0},
		"onset_times": onsets,
		"rms":         rms,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	sidecar := filepath.Join(dir, name+".analysis.json")
	if err := os.WriteFile(sidecar, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return audio
}
