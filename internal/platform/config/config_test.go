package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kit "shulzmanim/internal/platform/testkit"
)

func TestPrefix(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("WINDOW_")
	if got := c.key("DAYS"); got != "CORE_WINDOW_DAYS" {
		t.Fatalf("key = %q", got)
	}
}

func TestMust(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_URL", " postgres://x ")
	t.Setenv("M_N", "12")
	t.Setenv("M_BADN", "twelve")
	t.Setenv("M_D", "90s")

	if c.MustString("URL") != "postgres://x" {
		t.Fatal("MustString should trim")
	}
	if c.MustInt("N") != 12 {
		t.Fatal("MustInt")
	}
	if c.MustDuration("D") != 90*time.Second {
		t.Fatal("MustDuration")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
	kit.MustPanic(t, func() { _ = c.MustInt("BADN") })
	kit.MustPanic(t, func() { c.Require("URL", "MISSING") })
}

func TestMay(t *testing.T) {
	c := New().Prefix("W_")
	t.Setenv("W_DAYS", "200")
	t.Setenv("W_BAD", "x")
	t.Setenv("W_ON", "true")
	t.Setenv("W_TIMEOUT", "nope")
	t.Setenv("W_LIST", " a, ,b ")

	if c.MayInt("DAYS", 180) != 200 || c.MayInt("BAD", 180) != 180 || c.MayInt("UNSET", 180) != 180 {
		t.Fatal("MayInt")
	}
	if !c.MayBool("ON", false) || c.MayBool("BAD", false) {
		t.Fatal("MayBool")
	}
	if c.MayDuration("TIMEOUT", time.Minute) != time.Minute {
		t.Fatal("MayDuration fallback")
	}
	got := c.MayCSV("LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("MayCSV = %#v", got)
	}
	if c.MayString("UNSET", "def") != "def" {
		t.Fatal("MayString")
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")
	t.Setenv("E_FMT", "JSON")
	if got := c.MayEnum("FMT", "console", "console", "json"); got != "json" {
		t.Fatalf("MayEnum = %q", got)
	}
	t.Setenv("E_BAD", "xml")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "console", "console", "json") })
}

func TestMayLocation(t *testing.T) {
	c := New().Prefix("TZ_")
	t.Setenv("TZ_OK", "America/New_York")
	t.Setenv("TZ_BAD", "Mars/Olympus")

	if got := c.MayLocation("OK", time.UTC); got.String() != "America/New_York" {
		t.Fatalf("MayLocation = %v", got)
	}
	if got := c.MayLocation("BAD", time.UTC); got != time.UTC {
		t.Fatalf("bad zone should fall back, got %v", got)
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "test.env")
	if err := os.WriteFile(f, []byte("ZM_DOTENV_A=from-file\nZM_DOTENV_B=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ZM_DOTENV_B", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("ZM_DOTENV_A") })

	if err := LoadDotenv(f, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	if os.Getenv("ZM_DOTENV_A") != "from-file" {
		t.Fatal("file value not loaded")
	}
	if os.Getenv("ZM_DOTENV_B") != "from-env" {
		t.Fatal("existing env must win over the file")
	}
}
