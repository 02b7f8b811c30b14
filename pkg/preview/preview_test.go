package preview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloomify/beatforge/pkg/beatmap"
)

func testMap() *beatmap.Beatmap {
	return &beatmap.Beatmap{
		Title: "t", BPM: 120,
		Notes: []beatmap.Note{
			{TimeMS: 0, Lane: 0},
			{TimeMS: 125, Lane: 2},
			{TimeMS: 250, Lane: 1},
			{TimeMS: 250, Lane: 3},
		},
	}
}

func TestRenderDefaults(t *testing.T) {
	dc, err := Render(testMap(), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := dc.Image()
	b := img.Bounds()
	if b.Dx() != 1200 || b.Dy() != 240 {
		t.Fatalf("image size = %dx%d, want 1200x240", b.Dx(), b.Dy())
	}
}

func TestRenderLaneOutOfRange(t *testing.T) {
	m := testMap()
	if _, err := Render(m, Options{Lanes: 2}); err == nil {
		t.Fatal("Render accepted a note outside the configured lanes")
	}
}

func TestRenderEmptyMap(t *testing.T) {
	if _, err := Render(&beatmap.Beatmap{}, Options{}); err != nil {
		t.Fatalf("Render empty map: %v", err)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	if err := WritePNG(path, testMap(), Options{Width: 400, Height: 120}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 400 {
		t.Errorf("width = %d, want 400", img.Bounds().Dx())
	}
}
