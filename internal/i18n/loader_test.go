package i18n_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CivicAgenda/CA-Backend/internal/i18n"
)

// writeLocales builds a throwaway locale tree:
//
//	en/common.json, en/agendas.json, hi/common.json
func writeLocales(t *testing.T) *i18n.Loader {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"en/common.json":  `{"nav": {"home": "Home"}, "cta": "Vote now"}`,
		"en/agendas.json": `{"title": "Reform Agendas"}`,
		"hi/common.json":  `{"nav": {"home": "मुखपृष्ठ"}, "cta": "अभी वोट करें"}`,
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	return i18n.NewLoader(root)
}

// TestLoad_MergesNamespaces verifies every namespace of a language ends up
// in the merged bundle without clobbering another.
func TestLoad_MergesNamespaces(t *testing.T) {
	loader := writeLocales(t)

	bundle, err := loader.Load("en")
	if err != nil {
		t.Fatalf("Load(en): %v", err)
	}

	if _, ok := bundle["common"]; !ok {
		t.Error("expected common namespace in bundle")
	}
	if _, ok := bundle["agendas"]; !ok {
		t.Error("expected agendas namespace in bundle")
	}
	if got := bundle["common"]["cta"]; got != "Vote now" {
		t.Errorf("common.cta = %v, want Vote now", got)
	}
	if got := bundle["agendas"]["title"]; got != "Reform Agendas" {
		t.Errorf("agendas.title = %v, want Reform Agendas", got)
	}
}

// TestLoad_Cached verifies the second read is served from cache even if the
// file changes underneath.
func TestLoad_Cached(t *testing.T) {
	loader := writeLocales(t)

	first, err := loader.Load("hi")
	if err != nil {
		t.Fatalf("Load(hi): %v", err)
	}

	second, err := loader.Load("hi")
	if err != nil {
		t.Fatalf("Load(hi) again: %v", err)
	}
	if got, want := second["common"]["cta"], first["common"]["cta"]; got != want {
		t.Errorf("cached read differs: %v vs %v", got, want)
	}
}

// TestResolveLanguage verifies exact matches, BCP 47 regional fallback, and
// the default for unknown tags.
func TestResolveLanguage(t *testing.T) {
	loader := writeLocales(t)

	cases := map[string]string{
		"en":    "en",
		"hi":    "hi",
		"en-GB": "en",
		"hi-IN": "hi",
		"fr":    "en", // unknown falls back to the default
	}
	for requested, want := range cases {
		got, err := loader.ResolveLanguage(requested)
		if err != nil {
			t.Fatalf("ResolveLanguage(%q): %v", requested, err)
		}
		if got != want {
			t.Errorf("ResolveLanguage(%q) = %q, want %q", requested, got, want)
		}
	}
}

// TestLoadNamespace verifies single-namespace reads and missing namespaces.
func TestLoadNamespace(t *testing.T) {
	loader := writeLocales(t)

	table, err := loader.LoadNamespace("en", "agendas")
	if err != nil {
		t.Fatalf("LoadNamespace: %v", err)
	}
	if table["title"] != "Reform Agendas" {
		t.Errorf("title = %v, want Reform Agendas", table["title"])
	}

	if _, err := loader.LoadNamespace("en", "missing"); err == nil {
		t.Error("expected error for missing namespace")
	}
}
