package commands

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPreviewDefaultOutput(t *testing.T) {
	setupTestEnv(t)
	dir := t.TempDir()
	mapPath := writeBeatmapFile(t, dir)

	stdout, stderr, code := runCmd(t, "preview", mapPath)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	pngPath := filepath.Join(dir, "map.png")
	if !strings.Contains(stdout, pngPath) {
		t.Errorf("stdout = %q, want output path", stdout)
	}

	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("open rendered image: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Error("rendered image is empty")
	}
}

func TestPreviewMissingMap(t *testing.T) {
	setupTestEnv(t)
	if _, _, code := runCmd(t, "preview", "/nonexistent/map.json"); code == 0 {
		t.Fatal("preview succeeded for a missing beatmap")
	}
}
