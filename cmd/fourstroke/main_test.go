package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/fourstroke/internal/config"
	"github.com/verte-zerg/fourstroke/internal/locale"
	"github.com/verte-zerg/fourstroke/internal/model"
	"github.com/verte-zerg/fourstroke/internal/store"
)

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRenderSnapshotSingle(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "engine.png")
	paths, err := renderSnapshot(model.SnapshotConfig{Lang: "pt", Width: 550, Out: out, Progress: 2.2})
	if err != nil {
		t.Fatalf("renderSnapshot: %v", err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Fatalf("paths = %v, want [%s]", paths, out)
	}
	if w, h := decodeSize(t, out); w != 550 || h != 350 {
		t.Fatalf("size = %dx%d, want 550x350", w, h)
	}
}

func TestRenderSnapshotFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	paths, err := renderSnapshot(model.SnapshotConfig{Lang: "en", Width: 110, Out: dir, Frames: 4})
	if err != nil {
		t.Fatalf("renderSnapshot: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("got %d frames, want 4", len(paths))
	}
	for i, name := range []string{"frame-000.png", "frame-001.png", "frame-002.png", "frame-003.png"} {
		if filepath.Base(paths[i]) != name {
			t.Fatalf("frame %d = %s, want %s", i, paths[i], name)
		}
		if w, h := decodeSize(t, paths[i]); w != 110 || h != 70 {
			t.Fatalf("frame %d size = %dx%d, want 110x70", i, w, h)
		}
	}
}

func TestRenderSnapshotUnknownLanguage(t *testing.T) {
	_, err := renderSnapshot(model.SnapshotConfig{Lang: "xx", Width: 100, Out: filepath.Join(t.TempDir(), "x.png")})
	if err == nil {
		t.Fatalf("expected error for unknown language")
	}
}

func TestWriteTextFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTextFrame(&buf, locale.MustGet("en"), 80, 0.25); err != nil {
		t.Fatalf("writeTextFrame: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Stage: Intake", "Crankshaft: 23°", "  Piston: "} {
		if !strings.Contains(out, want) {
			t.Fatalf("frame output missing %q:\n%s", want, out)
		}
	}
	if err := writeTextFrame(&buf, locale.MustGet("en"), 5, 0); err == nil {
		t.Fatalf("expected error for narrow frame")
	}
}

func TestWriteTextFrameRejectsNonFiniteProgress(t *testing.T) {
	for _, p := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := writeTextFrame(io.Discard, locale.MustGet("en"), 80, p)
		if err == nil || !strings.Contains(err.Error(), "finite") {
			t.Fatalf("writeTextFrame(progress=%v) error = %v, want finite-number error", p, err)
		}
	}
}

func TestRenderSnapshotBackground(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dark.png")
	if _, err := renderSnapshot(model.SnapshotConfig{Lang: "en", Width: 110, Out: out, Background: "#000000"}); err != nil {
		t.Fatalf("renderSnapshot: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 || a != 0xffff {
		t.Fatalf("corner pixel = (%d, %d, %d, %d), want opaque black", r, g, b, a)
	}
}

func TestValidHexColor(t *testing.T) {
	for _, s := range []string{"#fff", "#ffffff", "#ffffffe6"} {
		if !validHexColor(s) {
			t.Fatalf("validHexColor(%q) = false", s)
		}
	}
	for _, s := range []string{"", "fff", "#ggg", "#12345", "#fffffffff"} {
		if validHexColor(s) {
			t.Fatalf("validHexColor(%q) = true", s)
		}
	}
}

func TestAnswerQuizRecordsAttempt(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	result, err := answerQuiz(context.Background(), st, locale.MustGet("pt"), "4", at)
	if err != nil {
		t.Fatalf("answerQuiz: %v", err)
	}
	if !result.Correct {
		t.Fatalf("expected correct result, got %+v", result)
	}
	if _, err := answerQuiz(context.Background(), st, locale.MustGet("pt"), " 4", at); err != nil {
		t.Fatalf("answerQuiz: %v", err)
	}
	attempts, err := st.ListAttempts(context.Background(), model.AttemptFilter{Lang: "pt"})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 2 || !attempts[0].Correct || attempts[1].Correct {
		t.Fatalf("attempts = %+v", attempts)
	}
}

func TestBuildFilter(t *testing.T) {
	filter, err := buildFilter("PT", "2026-01-02", 5)
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if filter.Lang != "pt" || filter.Last != 5 || filter.Since == nil {
		t.Fatalf("filter = %+v", filter)
	}
	if filter.Since.Year() != 2026 || filter.Since.Month() != time.January || filter.Since.Day() != 2 {
		t.Fatalf("since = %v", filter.Since)
	}
	if _, err := buildFilter("", "yesterday", 0); err == nil {
		t.Fatalf("expected error for bad date")
	}
	if _, err := buildFilter("", "", -1); err == nil {
		t.Fatalf("expected error for negative last")
	}
	if _, err := buildFilter("xx", "", 0); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     model.Config
		wantErr bool
	}{
		{name: "defaults", cfg: model.Config{Lang: defaultLang, FPS: defaultFPS}},
		{name: "zero fps", cfg: model.Config{Lang: "en", FPS: 0}, wantErr: true},
		{name: "too fast", cfg: model.Config{Lang: "en", FPS: maxFPS + 1}, wantErr: true},
		{name: "unknown lang", cfg: model.Config{Lang: "xx", FPS: 30}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateConfig(%+v) error = %v, wantErr %v", tt.cfg, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSnapshotConfig(t *testing.T) {
	ok := model.SnapshotConfig{Lang: "en", Width: 100, Out: "x.png"}
	if err := validateSnapshotConfig(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []model.SnapshotConfig{
		{Lang: "en", Width: 0, Out: "x.png"},
		{Lang: "en", Width: 100, Out: "x.png", Frames: -1},
		{Lang: "en", Width: 100},
		{Lang: "en", Width: 100, Out: "x.png", Progress: math.NaN()},
		{Lang: "en", Width: 100, Out: "x.png", Progress: math.Inf(1)},
		{Lang: "en", Width: 100, Out: "x.png", Progress: math.Inf(-1)},
		{Lang: "en", Width: 100, Out: "x.png", Background: "white"},
		{Lang: "en", Width: 100, Out: "x.png", Background: "#12345"},
	}
	for _, cfg := range bad {
		if err := validateSnapshotConfig(cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fourstroke", "config.toml")
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("writeConfigTemplate: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Display.Lang != nil || cfg.Snapshot.Width != nil {
		t.Fatalf("template should leave every value unset: %+v", cfg)
	}

	custom := []byte("[display]\nlang = \"pt\"\n")
	if err := os.WriteFile(path, custom, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("writeConfigTemplate: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !bytes.Equal(data, custom) {
		t.Fatalf("existing config overwritten")
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Set("fps", "24"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	fps := 24
	fromFile := 90
	applyIntConfig(cmd, "fps", &fps, &fromFile)
	if fps != 24 {
		t.Fatalf("fps = %d, want flag value 24", fps)
	}
	lang := defaultLang
	fileLang := "pt"
	applyStringConfig(cmd, "lang", &lang, &fileLang)
	if lang != "pt" {
		t.Fatalf("lang = %q, want config value pt", lang)
	}
}
