package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloomify/beatforge/pkg/beatmap"
)

func TestGenerateExpert(t *testing.T) {
	setupTestEnv(t)
	dir := t.TempDir()
	audio := writeSong(t, dir, "synthwave", nil)

	stdout, stderr, code := runCmd(t, "generate", audio,
		"--mode", "expert", "--chord-chance", "0", "--seed", "1", "--no-cache")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "beatmap generated") {
		t.Fatalf("missing summary in output: %s", stdout)
	}

	outPath := filepath.Join(dir, "synthwave_expert_autogen.json")
	m, err := beatmap.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if m.Title != "synthwave" || m.AudioPath != "synthwave.wav" {
		t.Errorf("metadata = %q/%q", m.Title, m.AudioPath)
	}
	if m.Mapper != "StreamGenerator" {
		t.Errorf("mapper = %q, want StreamGenerator", m.Mapper)
	}
	if m.BPM != 120 {
		t.Errorf("bpm = %v, want 120", m.BPM)
	}
	// 4 intervals, all streaming, subdivision 4.
	if len(m.Notes) != 16 {
		t.Fatalf("notes = %d, want 16", len(m.Notes))
	}
	for i, n := range m.Notes {
		if n.TimeMS != i*125 {
			t.Fatalf("note %d at %dms, want %d", i, n.TimeMS, i*125)
		}
	}
	if m.OffsetMS != nil {
		t.Error("expert output should not carry offset_ms")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestGenerateChaoticEmitsTiming(t *testing.T) {
	setupTestEnv(t)
	dir := t.TempDir()
	audio := writeSong(t, dir, "track", []float64{0.05, 0.3, 0.8})
	out := filepath.Join(dir, "out.json")

	_, stderr, code := runCmd(t, "generate", audio,
		"--mode", "chaotic", "--seed", "7", "--no-cache", "-o", out)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}

	m, err := beatmap.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Notes) != 3 {
		t.Fatalf("notes = %d, want one per onset", len(m.Notes))
	}
	if m.OffsetMS == nil || *m.OffsetMS != 0 {
		t.Errorf("offset_ms = %v, want 0 (first beat)", m.OffsetMS)
	}
	if m.SongLengthMS == nil || *m.SongLengthMS != 2100 {
		t.Errorf("song_length_ms = %v, want 2100", m.SongLengthMS)
	}
	if m.Artist != "BLOOMIFY Engine" || !strings.Contains(m.Mapper, "chaotic") {
		t.Errorf("metadata = %q/%q", m.Artist, m.Mapper)
	}
}

func TestGenerateSeedReproducible(t *testing.T) {
	setupTestEnv(t)
	dir := t.TempDir()
	audio := writeSong(t, dir, "track", []float64{0.05, 0.3, 0.8, 1.1, 1.6})

	out1 := filepath.Join(dir, "a.json")
	out2 := filepath.Join(dir, "b.json")
	for _, out := range []string{out1, out2} {
		if _, stderr, code := runCmd(t, "generate", audio,
			"--mode", "smart", "--seed", "99", "--no-cache", "-o", out); code != 0 {
			t.Fatalf("exit %d: %s", code, stderr)
		}
	}
	m1, err := beatmap.ReadFile(out1)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := beatmap.ReadFile(out2)
	if err != nil {
		t.Fatal(err)
	}
	if len(m1.Notes) != len(m2.Notes) {
		t.Fatalf("note counts differ: %d vs %d", len(m1.Notes), len(m2.Notes))
	}
	for i := range m1.Notes {
		if m1.Notes[i] != m2.Notes[i] {
			t.Fatalf("note %d differs with same seed: %v vs %v", i, m1.Notes[i], m2.Notes[i])
		}
	}
}

func TestGenerateCacheHit(t *testing.T) {
	setupTestEnv(t)
	dir := t.TempDir()
	audio := writeSong(t, dir, "track", nil)
	out := filepath.Join(dir, "out.json")

	stdout, stderr, code := runCmd(t, "generate", audio, "--seed", "1", "-o", out)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "miss") {
		t.Fatalf("first run should miss the cache: %s", stdout)
	}

	stdout, stderr, code = runCmd(t, "generate", audio, "--seed", "1", "-o", out)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "hit") {
		t.Fatalf("second run should hit the cache: %s", stdout)
	}
}

func TestGenerateMissingSidecar(t *testing.T) {
	setupTestEnv(t)
	dir := t.TempDir()
	audio := filepath.Join(dir, "naked.mp3")
	if err := os.WriteFile(audio, []byte("ID3"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := runCmd(t, "generate", audio, "--no-cache")
	if code == 0 {
		t.Fatal("generate succeeded without an analysis sidecar")
	}
	if !strings.Contains(stderr, "no sidecar") {
		t.Fatalf("stderr = %q, want sidecar error", stderr)
	}
}

func TestGenerateMissingAudio(t *testing.T) {
	setupTestEnv(t)
	_, stderr, code := runCmd(t, "generate", "/nonexistent/song.mp3", "--no-cache")
	if code == 0 {
		t.Fatal("generate succeeded for a missing audio file")
	}
	if !strings.Contains(stderr, "audio file") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestGenerateRejectsBadFlags(t *testing.T) {
	setupTestEnv(t)
	dir := t.TempDir()
	audio := writeSong(t, dir, "track", nil)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero lanes", []string{"--lanes", "0"}, "lanes"},
		{"bad difficulty", []string{"--difficulty", "1.5"}, "difficulty"},
		{"zero subdivision", []string{"--stream-subdivision", "0"}, "stream_subdivision"},
		{"unknown mode", []string{"--mode", "turbo"}, "profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"generate", audio, "--no-cache"}, tt.args...)
			_, stderr, code := runCmd(t, args...)
			if code == 0 {
				t.Fatal("generate accepted invalid flags")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Fatalf("stderr = %q, want mention of %q", stderr, tt.want)
			}
		})
	}
}

func TestGenerateUsesConfigDefaults(t *testing.T) {
	cfgDir := setupTestEnv(t)
	doc := "mode: chaotic\nmapper: HouseMapper\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	audio := writeSong(t, dir, "track", []float64{0.2})
	out := filepath.Join(dir, "out.json")

	_, stderr, code := runCmd(t, "generate", audio, "--no-cache", "-o", out, "--seed", "3")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	m, err := beatmap.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	// mode from config file, mapper overridden by config file.
	if m.OffsetMS == nil {
		t.Error("config-file chaotic mode should emit timing fields")
	}
	if m.Mapper != "HouseMapper" {
		t.Errorf("mapper = %q, want config override", m.Mapper)
	}
}
