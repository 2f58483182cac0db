package canopy

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-click", "after-click"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	m := newTestManager()
	m.Screenshot("a")
	m.Screenshot("b")
	m.Screenshot("c")
	if len(m.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(m.screenshotQueue))
	}
	if m.screenshotQueue[0] != "a" || m.screenshotQueue[1] != "b" || m.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", m.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	m := newTestManager()
	if m.Config().ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", m.Config().ScreenshotDir, "screenshots")
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{255, 127, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := unpremultiply([]byte{255, 0, 0, 255, 0, 0, 255, 255}, 2, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("bounds = %v, want 2x1", b)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "shot.png")
	if err := writePNG(path, unpremultiply(nil, 0, 0)); err == nil {
		t.Error("expected error for a missing directory")
	}
}
