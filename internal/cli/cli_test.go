package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/config"
)

func writeTestBoard(t *testing.T) string {
	t.Helper()
	b := board.Board{
		ID:   "b1",
		Name: "demo",
		Objects: []board.Object{
			{ID: "a", Kind: board.KindRectangle, Label: "Birds", Left: 10, Top: 20},
			{ID: "c", Kind: board.KindCircle, Left: 400, Top: 300},
		},
		Labels: []string{"Birds"},
	}
	path := filepath.Join(t.TempDir(), "board.json")
	if err := board.WriteBoardFile(b, path); err != nil {
		t.Fatalf("WriteBoardFile() = %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, log.WarnLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"layout", "render", "labels", "view", "cache", "serve"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	path := writeTestBoard(t)

	if err := runCommand(t, "layout", path, "--no-cache", "--format", "json"); err != nil {
		t.Fatalf("layout command = %v", err)
	}

	out := strings.TrimSuffix(path, ".json") + ".layout.json"
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var plan map[string]json.RawMessage
	if err := json.Unmarshal(data, &plan); err != nil {
		t.Fatalf("artifact is not JSON: %v", err)
	}
	if _, ok := plan["positions"]; !ok {
		t.Error("artifact missing positions")
	}
}

func TestLayoutCommandExplicitOutput(t *testing.T) {
	path := writeTestBoard(t)
	out := filepath.Join(t.TempDir(), "result.svg")

	if err := runCommand(t, "layout", path, "--no-cache", "-o", out); err != nil {
		t.Fatalf("layout command = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("artifact is not an SVG")
	}
}

func TestRenderCommand(t *testing.T) {
	path := writeTestBoard(t)
	out := filepath.Join(t.TempDir(), "board.svg")

	if err := runCommand(t, "render", path, "--no-cache", "-o", out, "--filter", "Birds"); err != nil {
		t.Fatalf("render command = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.Contains(data, []byte("Birds")) {
		t.Error("SVG should contain the group header label")
	}
}

func TestLayoutCommandRejectsBadFormat(t *testing.T) {
	path := writeTestBoard(t)
	if err := runCommand(t, "layout", path, "--format", "pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLabelsAddAndList(t *testing.T) {
	path := writeTestBoard(t)

	if err := runCommand(t, "labels", "add", path, "Cats"); err != nil {
		t.Fatalf("labels add = %v", err)
	}

	b, err := board.ReadBoardFile(path)
	if err != nil {
		t.Fatalf("ReadBoardFile() = %v", err)
	}
	if len(b.Labels) != 2 || b.Labels[1] != "Cats" {
		t.Errorf("labels = %v, want [Birds Cats]", b.Labels)
	}

	// Duplicate add leaves the board untouched.
	if err := runCommand(t, "labels", "add", path, "Cats"); err != nil {
		t.Fatalf("duplicate labels add = %v", err)
	}
	b, _ = board.ReadBoardFile(path)
	if len(b.Labels) != 2 {
		t.Errorf("labels after duplicate add = %v", b.Labels)
	}
}

func TestLabelsRename(t *testing.T) {
	path := writeTestBoard(t)

	if err := runCommand(t, "labels", "rename", path, "Birds", "Raptors"); err != nil {
		t.Fatalf("labels rename = %v", err)
	}

	b, _ := board.ReadBoardFile(path)
	if len(b.Labels) != 1 || b.Labels[0] != "Raptors" {
		t.Errorf("labels = %v, want [Raptors]", b.Labels)
	}
	// Objects keep their original tag.
	if b.Objects[0].Label != "Birds" {
		t.Errorf("object label = %q, objects must not be retagged", b.Objects[0].Label)
	}
}

func TestLabelsRemove(t *testing.T) {
	path := writeTestBoard(t)

	if err := runCommand(t, "labels", "remove", path, "Birds"); err != nil {
		t.Fatalf("labels remove = %v", err)
	}
	b, _ := board.ReadBoardFile(path)
	if len(b.Labels) != 0 {
		t.Errorf("labels = %v, want empty", b.Labels)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-test", appName) {
		t.Errorf("cacheDir() = %s", dir)
	}
}

func TestClearCacheDir(t *testing.T) {
	dir := t.TempDir()
	shard := filepath.Join(dir, "ab")
	if err := os.MkdirAll(shard, 0755); err != nil {
		t.Fatalf("MkdirAll() = %v", err)
	}
	for i, name := range []string{"one.json", "two.json"} {
		data := bytes.Repeat([]byte("x"), 10*(i+1))
		if err := os.WriteFile(filepath.Join(shard, name), data, 0644); err != nil {
			t.Fatalf("WriteFile() = %v", err)
		}
	}

	count, size, err := clearCacheDir(dir)
	if err != nil {
		t.Fatalf("clearCacheDir() = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if size != 30 {
		t.Errorf("size = %d, want 30", size)
	}
	if _, err := os.Stat(shard); !os.IsNotExist(err) {
		t.Error("shard directory should be removed")
	}

	// Clearing a missing directory is a no-op.
	count, size, err = clearCacheDir(filepath.Join(dir, "missing"))
	if err != nil || count != 0 || size != 0 {
		t.Errorf("clearCacheDir(missing) = %d, %d, %v", count, size, err)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.CacheConfig
		noCache bool
	}{
		{"no-cache flag", config.CacheConfig{Backend: config.CacheBackendFile}, true},
		{"none backend", config.CacheConfig{Backend: config.CacheBackendNone}, false},
		{"memory backend", config.CacheConfig{Backend: config.CacheBackendMemory, TTLHours: 1}, false},
		{"file backend", config.CacheConfig{Backend: config.CacheBackendFile, Dir: t.TempDir()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(ctx, tt.cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache() = %v", err)
			}
			if c == nil {
				t.Fatal("newCache() returned nil")
			}
			_ = c.Close()
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CORKBOARD_ADDR", ":9999")
	t.Setenv("CORKBOARD_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("CORKBOARD_REDIS_DB", "3")

	cfg := config.Default()
	applyEnvOverrides(&cfg)

	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %s", cfg.Server.Addr)
	}
	if cfg.Server.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI = %s", cfg.Server.MongoURI)
	}
	if cfg.Cache.RedisDB != 3 {
		t.Errorf("RedisDB = %d", cfg.Cache.RedisDB)
	}
}
