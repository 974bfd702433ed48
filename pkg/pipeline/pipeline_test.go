package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/datatree/pkg/cache"
	"github.com/matzehuels/datatree/pkg/dataset"
	dterrors "github.com/matzehuels/datatree/pkg/errors"
	"github.com/matzehuels/datatree/pkg/fonts"
)

func testDataset() dataset.Dataset {
	return dataset.Dataset{
		{Name: "Fruit", Subcategories: []dataset.Subcategory{
			{Name: "Red", Items: []string{"Apple", "Cherry"}},
			{Name: "Yellow", Items: []string{"Banana"}},
		}},
		{Name: "Veg", Subcategories: []dataset.Subcategory{
			{Name: "Green", Items: []string{"Kale", "Pea", "Leek"}},
		}},
	}
}

// memCache is an in-memory cache that counts reads and writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"jpeg", false},
		{"pdf", false},
		{"json", false},
		{"jpg", true}, // normalized before validation
		{"invalid", true},
		{"SVG", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !dterrors.Is(err, dterrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, dterrors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := map[string]string{
		"png":   "png",
		"JPG":   "jpeg",
		" svg ": "svg",
		"Jpeg":  "jpeg",
	}
	for in, want := range tests {
		if got := NormalizeFormat(in); got != want {
			t.Errorf("NormalizeFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Input: "data.json", Formats: []string{"PNG", "jpg", "png", "jpeg"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if got := strings.Join(opts.Formats, ","); got != "png,jpeg" {
		t.Errorf("Formats = %q, want png,jpeg", got)
	}
	if opts.Chart.Colormap == "" || opts.Chart.FontFamily == "" {
		t.Errorf("chart defaults not applied: %+v", opts.Chart)
	}
	if opts.Logger == nil || opts.Fonts == nil {
		t.Error("runtime defaults not applied")
	}

	empty := Options{Input: "data.json"}
	if err := empty.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(empty.Formats) != 1 || empty.Formats[0] != DefaultFormat {
		t.Errorf("default formats = %v", empty.Formats)
	}

	missing := Options{}
	if err := missing.ValidateAndSetDefaults(); !dterrors.Is(err, dterrors.ErrCodeInvalidInput) {
		t.Errorf("missing input: err = %v, want INVALID_INPUT", err)
	}

	bad := Options{Input: "x.json", Formats: []string{"gif"}}
	if err := bad.ValidateAndSetDefaults(); !dterrors.Is(err, dterrors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: err = %v, want INVALID_FORMAT", err)
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		input, dir, format, want string
	}{
		{"data/dataset.json", "", FormatPNG, "dataset.png"},
		{"data/dataset.json", "out", FormatJPEG, "out/dataset.jpg"},
		{"dataset", "out/", FormatSVG, "out/dataset.svg"},
		{"", "", FormatPDF, "chart.pdf"},
	}
	for _, tt := range tests {
		if got := ArtifactPath(tt.input, tt.dir, tt.format); got != tt.want {
			t.Errorf("ArtifactPath(%q, %q, %q) = %q, want %q", tt.input, tt.dir, tt.format, got, tt.want)
		}
	}
}

func TestExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := dataset.Export(testDataset(), path); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Input:   path,
		Formats: []string{"svg", "json"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.Categories != 2 || result.Stats.Subcategories != 3 || result.Stats.Items != 6 {
		t.Errorf("Stats = %+v", result.Stats.Stats)
	}
	if result.DatasetHash == "" {
		t.Error("DatasetHash is empty")
	}
	if !bytes.HasPrefix(bytes.TrimSpace(result.Artifacts["svg"]), []byte("<svg")) {
		t.Errorf("svg artifact does not start with <svg: %.40q", result.Artifacts["svg"])
	}

	var doc map[string]any
	if err := json.Unmarshal(result.Artifacts["json"], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc["colormap"] != result.Chart.Colormap {
		t.Errorf("json colormap = %v, want %s", doc["colormap"], result.Chart.Colormap)
	}
	if result.CacheInfo.RenderHit {
		t.Error("null cache should never hit")
	}
}

func TestExecuteRasterFormats(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := Options{
		Dataset: testDataset(),
		Formats: []string{"png", "jpg"},
		Fonts:   &fonts.Resolver{},
	}
	opts.Chart.FontFamily = "Go"

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(result.Artifacts["png"]))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1440 || b.Dy() != 1440 {
		t.Errorf("png size = %v, want 1440x1440", b)
	}
	if jpg := result.Artifacts["jpeg"]; len(jpg) < 2 || jpg[0] != 0xff || jpg[1] != 0xd8 {
		t.Error("jpeg artifact lacks SOI marker")
	}
}

func TestExecuteCachesArtifacts(t *testing.T) {
	mc := newMemCache()
	runner := NewRunner(mc, nil, nil)
	opts := Options{Dataset: testDataset(), Formats: []string{"svg"}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}
	if mc.sets != 1 {
		t.Errorf("sets = %d, want 1", mc.sets)
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit")
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	// Changing the offset changes the key.
	opts.Chart.Offset = 3
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("different offset should miss")
	}

	opts.Refresh = true
	fourth, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	_, err := runner.Execute(ctx, Options{Input: filepath.Join(t.TempDir(), "missing.json")})
	if !dterrors.Is(err, dterrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v, want FILE_NOT_FOUND", err)
	}

	_, err = runner.Execute(ctx, Options{Dataset: dataset.Dataset{}, Formats: []string{"svg"}})
	if !dterrors.Is(err, dterrors.ErrCodeEmptyDataset) {
		t.Errorf("empty dataset: err = %v, want EMPTY_DATASET", err)
	}
	if err != nil && !strings.HasPrefix(err.Error(), "build:") {
		t.Errorf("error %q lacks stage prefix", err)
	}

	opts := Options{Dataset: testDataset(), Formats: []string{"svg"}}
	opts.Chart.Colormap = "nope"
	_, err = runner.Execute(ctx, opts)
	if !dterrors.Is(err, dterrors.ErrCodeUnknownColormap) {
		t.Errorf("unknown colormap: err = %v, want UNKNOWN_COLORMAP", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"A": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = runner.Execute(ctx, Options{Input: bad})
	if !dterrors.Is(err, dterrors.ErrCodeInvalidDataset) {
		t.Errorf("bad dataset: err = %v, want INVALID_DATASET", err)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{Dataset: testDataset(), Formats: []string{"svg"}})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestHashDatasetIsStable(t *testing.T) {
	a, err := HashDataset(testDataset())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashDataset(testDataset())
	if a != b {
		t.Error("hash is not deterministic")
	}

	d := testDataset()
	d[0].Subcategories[0].Items = append(d[0].Subcategories[0].Items, "Plum")
	c, _ := HashDataset(d)
	if a == c {
		t.Error("hash ignores content change")
	}
}

var _ cache.Cache = (*memCache)(nil)
