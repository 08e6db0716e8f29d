package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Config holds user defaults for tables opened by the CLI.
type Config struct {
	Debounce    time.Duration
	PageSize    int
	PageSizes   []int
	Locale      string
	DateLayout  string
	MoneySymbol string
	LogLevel    string
	LogFile     string
}

const (
	keyDebounce    = "DATATABLE_DEBOUNCE_MS"
	keyPageSize    = "DATATABLE_PAGE_SIZE"
	keyPageSizes   = "DATATABLE_PAGE_SIZES"
	keyLocale      = "DATATABLE_LOCALE"
	keyDateLayout  = "DATATABLE_DATE_LAYOUT"
	keyMoneySymbol = "DATATABLE_MONEY_SYMBOL"
	keyLogLevel    = "DATATABLE_LOG_LEVEL"
	keyLogFile     = "DATATABLE_LOG_FILE"
)

var keys = []string{keyDebounce, keyPageSize, keyPageSizes, keyLocale, keyDateLayout, keyMoneySymbol, keyLogLevel, keyLogFile}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Debounce:    200 * time.Millisecond,
		PageSize:    10,
		PageSizes:   []int{10, 25, 50},
		Locale:      "en-US",
		DateLayout:  "01/02/2006",
		MoneySymbol: "$",
		LogLevel:    "warn",
	}
}

// DefaultPath returns ~/.datatablerc, or ./.datatablerc without a home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".datatablerc"
	}
	return filepath.Join(home, ".datatablerc")
}

// Load reads KEY=value lines from path when it exists, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	values := map[string]string{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if values, err = parse(data); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			values[k] = v
		}
	}
	return fromValues(values)
}

func parse(data []byte) (map[string]string, error) {
	values := map[string]string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: invalid format, want KEY=value", n)
		}
		values[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return values, sc.Err()
}

func fromValues(values map[string]string) (Config, error) {
	cfg := Default()
	if v := values[keyDebounce]; v != "" {
		ms, err := cast.ToIntE(v)
		if err != nil || ms < 0 {
			return Config{}, fmt.Errorf("%s: invalid milliseconds %q", keyDebounce, v)
		}
		cfg.Debounce = time.Duration(ms) * time.Millisecond
	}
	if v := values[keyPageSize]; v != "" {
		n, err := cast.ToIntE(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: invalid page size %q", keyPageSize, v)
		}
		cfg.PageSize = n
	}
	if v := values[keyPageSizes]; v != "" {
		var sizes []int
		for _, part := range strings.Split(v, ",") {
			n, err := cast.ToIntE(strings.TrimSpace(part))
			if err != nil || n <= 0 {
				return Config{}, fmt.Errorf("%s: invalid page size %q", keyPageSizes, part)
			}
			sizes = append(sizes, n)
		}
		cfg.PageSizes = sizes
	}
	if v := values[keyLocale]; v != "" {
		cfg.Locale = v
	}
	if v := values[keyDateLayout]; v != "" {
		cfg.DateLayout = v
	}
	if v, ok := values[keyMoneySymbol]; ok {
		cfg.MoneySymbol = v
	}
	if v := values[keyLogLevel]; v != "" {
		cfg.LogLevel = v
	}
	cfg.LogFile = values[keyLogFile]
	return cfg, nil
}

// Save writes cfg to path in the format Load reads.
func Save(path string, cfg Config) error {
	if cfg.PageSize <= 0 {
		return errors.New("page size must be positive")
	}
	sizes := make([]string, len(cfg.PageSizes))
	for i, n := range cfg.PageSizes {
		sizes[i] = cast.ToString(n)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%d\n", keyDebounce, cfg.Debounce.Milliseconds())
	fmt.Fprintf(&b, "%s=%d\n", keyPageSize, cfg.PageSize)
	fmt.Fprintf(&b, "%s=%s\n", keyPageSizes, strings.Join(sizes, ","))
	fmt.Fprintf(&b, "%s=%s\n", keyLocale, cfg.Locale)
	fmt.Fprintf(&b, "%s=%s\n", keyDateLayout, cfg.DateLayout)
	fmt.Fprintf(&b, "%s=%s\n", keyMoneySymbol, cfg.MoneySymbol)
	fmt.Fprintf(&b, "%s=%s\n", keyLogLevel, cfg.LogLevel)
	if cfg.LogFile != "" {
		fmt.Fprintf(&b, "%s=%s\n", keyLogFile, cfg.LogFile)
	}
	return os.WriteFile(path, []byte(b.String()), 0o600)
}
