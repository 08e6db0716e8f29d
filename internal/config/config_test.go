package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg")
	content := []byte("# table defaults\nDATATABLE_DEBOUNCE_MS=50\nDATATABLE_PAGE_SIZE=25\nDATATABLE_PAGE_SIZES=25, 100\nDATATABLE_MONEY_SYMBOL=€\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	want.Debounce = 50 * time.Millisecond
	want.PageSize = 25
	want.PageSizes = []int{25, 100}
	want.MoneySymbol = "€"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected cfg (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATATABLE_LOG_LEVEL", "debug")
	t.Setenv("DATATABLE_LOG_FILE", "/tmp/dt.log")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFile != "/tmp/dt.log" || cfg.PageSize != 10 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg")
	if err := os.WriteFile(path, []byte("DATATABLE_LOCALE=de-DE\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("DATATABLE_LOCALE", "fr-FR")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Locale != "fr-FR" {
		t.Fatalf("want fr-FR got %q", cfg.Locale)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, content := range []string{
		"DATATABLE_PAGE_SIZE=zero\n",
		"DATATABLE_PAGE_SIZES=10,-1\n",
		"DATATABLE_DEBOUNCE_MS=soon\n",
		"not a pair\n",
	} {
		path := filepath.Join(t.TempDir(), "cfg")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error for %q", content)
		}
	}
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg")
	cfg := Default()
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	expected := "DATATABLE_DEBOUNCE_MS=200\nDATATABLE_PAGE_SIZE=10\nDATATABLE_PAGE_SIZES=10,25,50\nDATATABLE_LOCALE=en-US\n" +
		"DATATABLE_DATE_LAYOUT=01/02/2006\nDATATABLE_MONEY_SYMBOL=$\nDATATABLE_LOG_LEVEL=warn\n"
	if string(data) != expected {
		t.Fatalf("file content = %q, want %q", string(data), expected)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(cfg, back); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestSaveRequiresPageSize(t *testing.T) {
	if err := Save("ignored", Config{}); err == nil {
		t.Fatal("expected error for empty page size")
	}
}

func TestDefaultPathUsesHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	want := filepath.Join(dir, ".datatablerc")
	if got := DefaultPath(); got != want {
		t.Fatalf("DefaultPath() = %q, want %q", got, want)
	}
}
