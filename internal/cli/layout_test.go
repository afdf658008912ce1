package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	wio "github.com/matzehuels/shapewordle/pkg/io"
)

const (
	fixtureW = 200
	fixtureH = 120
	fixtureR = 50
)

// writeDiskFixture writes a single-disk shape and a word list into dir and
// returns the three input paths.
func writeDiskFixture(t *testing.T, dir string, words int) (wordsPath, maskPath, fieldPath string) {
	t.Helper()

	mask := make([][]int, fixtureH)
	var dists [][3]float64
	for y := range fixtureH {
		mask[y] = make([]int, fixtureW)
		for x := range fixtureW {
			d := math.Hypot(float64(x-fixtureW/2), float64(y-fixtureH/2))
			if d > fixtureR {
				mask[y][x] = -1
				continue
			}
			dists = append(dists, [3]float64{float64(x), float64(y), d - fixtureR})
		}
	}
	var boundary [][2]float64
	for i := range 16 {
		a := float64(i) * math.Pi / 8
		boundary = append(boundary, [2]float64{fixtureW/2 + fixtureR*math.Cos(a), fixtureH/2 + fixtureR*math.Sin(a)})
	}

	type word struct {
		Name   string  `json:"name"`
		Weight float64 `json:"weight"`
	}
	list := make([]word, words)
	for i := range list {
		list[i] = word{Name: fmt.Sprintf("w%d", i), Weight: 1 - float64(i)/float64(words)}
	}

	wordsPath = filepath.Join(dir, "words.json")
	maskPath = filepath.Join(dir, "mask.json")
	fieldPath = filepath.Join(dir, "field.json")
	writeJSONFile(t, wordsPath, list)
	writeJSONFile(t, maskPath, mask)
	writeJSONFile(t, fieldPath, map[string]any{
		"boundaries": [][][2]float64{boundary},
		"dists":      [][][3]float64{dists},
	})
	return wordsPath, maskPath, fieldPath
}

func writeJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// run executes the root command with args and an isolated cache directory.
func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func layoutArgs(wordsPath, maskPath, fieldPath string) []string {
	return []string{
		"layout",
		"--words", wordsPath,
		"--mask", maskPath,
		"--field", fieldPath,
		"--width", fmt.Sprint(fixtureW),
		"--height", fmt.Sprint(fixtureH),
		"-k", "8",
		"--max-font", "30",
		"--min-font", "4",
		"--glyphs", "mono",
		"--seed", "7",
	}
}

func TestOptionFlagsResolve(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "wordle.toml")
	content := "keyword_num = 40\nwidth = 300\nplan = \"value\"\n"
	if err := os.WriteFile(config, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var of optionFlags
	cmd := &cobra.Command{Use: "test"}
	of.registerLayout(cmd)
	if err := cmd.Flags().Parse([]string{"--config", config, "--width", "500", "--seed", "9"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	opts, err := of.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}
	if opts.KeywordNum != 40 {
		t.Errorf("KeywordNum = %d, want 40 from file", opts.KeywordNum)
	}
	if opts.Width != 500 {
		t.Errorf("Width = %d, want 500 from flag", opts.Width)
	}
	if opts.Plan != "value" {
		t.Errorf("Plan = %q, want %q", opts.Plan, "value")
	}
	if opts.Seed != 9 {
		t.Errorf("Seed = %d, want 9", opts.Seed)
	}
	if opts.Height != 0 {
		t.Errorf("Height = %d, want 0 (unset flags must not override)", opts.Height)
	}
}

func TestOptionFlagsResolveMissingConfig(t *testing.T) {
	of := optionFlags{config: filepath.Join(t.TempDir(), "missing.toml")}
	if _, err := of.resolve(&cobra.Command{Use: "test"}); err == nil {
		t.Error("resolve() with a missing config should fail")
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	w, m, f := writeDiskFixture(t, dir, 30)
	base := filepath.Join(dir, "out", "cloud")

	args := append(layoutArgs(w, m, f), "-o", base, "-f", "svg,json")
	if err := run(t, args...); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	for _, p := range []string{base + ".svg", base + ".json", base + ".layout.json"} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing output %s: %v", p, err)
		}
	}

	l, err := wio.ReadLayoutFile(base + ".layout.json")
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if l.Width != fixtureW || l.Height != fixtureH {
		t.Errorf("layout size = %dx%d, want %dx%d", l.Width, l.Height, fixtureW, fixtureH)
	}
	if len(l.Keywords) == 0 {
		t.Error("layout should place keywords")
	}
	if l.Seed != 7 {
		t.Errorf("Seed = %d, want 7", l.Seed)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	dir := t.TempDir()
	w, m, f := writeDiskFixture(t, dir, 30)

	tests := []struct {
		name string
		args []string
	}{
		{"missing inputs", []string{"layout", "--words", w}},
		{"bad format", append(layoutArgs(w, m, f), "-f", "pdf", "-o", filepath.Join(dir, "x"))},
		{"missing words file", []string{"layout", "--words", filepath.Join(dir, "nope.json"), "--mask", m, "--field", f}},
		{"too few words", append(layoutArgs(w, m, f), "-k", "50", "-o", filepath.Join(dir, "y"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestRenderAndInspectCommands(t *testing.T) {
	dir := t.TempDir()
	w, m, f := writeDiskFixture(t, dir, 30)
	base := filepath.Join(dir, "cloud")
	if err := run(t, append(layoutArgs(w, m, f), "-o", base, "-f", "json")...); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	layoutPath := base + ".layout.json"

	out := filepath.Join(dir, "rendered.svg")
	if err := run(t, "render", layoutPath, "-o", out, "--field", f, "--outlines"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("render output missing: %v", err)
	}

	if err := run(t, "render", layoutPath, "--outlines"); err == nil {
		t.Error("render --outlines without --field should fail")
	}

	if err := run(t, "inspect", layoutPath); err != nil {
		t.Errorf("inspect error: %v", err)
	}
}
