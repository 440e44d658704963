package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/text/language"
)

// Loader lazily reads locale bundles from disk. The on-disk layout mirrors
// what the frontend ships: <root>/<lang>/<namespace>.json.
type Loader struct {
	root  string
	cache *gocache.Cache
}

func NewLoader(root string) *Loader {
	return &Loader{
		root:  root,
		cache: gocache.New(10*time.Minute, 30*time.Minute),
	}
}

// DefaultLoader reads from LOCALES_DIR (default "locales").
func DefaultLoader() *Loader {
	root := os.Getenv("LOCALES_DIR")
	if root == "" {
		root = "locales"
	}
	return NewLoader(root)
}

// Languages lists the available language directories, sorted, with "en"
// first when present so it becomes the matcher fallback.
func (l *Loader) Languages() ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, err
	}

	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Slice(langs, func(i, j int) bool {
		if langs[i] == "en" {
			return true
		}
		if langs[j] == "en" {
			return false
		}
		return langs[i] < langs[j]
	})
	return langs, nil
}

// ResolveLanguage maps a requested tag onto an available language, using
// BCP 47 matching so "en-GB" finds "en" and unknown tags fall back to the
// default.
func (l *Loader) ResolveLanguage(requested string) (string, error) {
	langs, err := l.Languages()
	if err != nil {
		return "", err
	}
	if len(langs) == 0 {
		return "", fmt.Errorf("no locale bundles under %s", l.root)
	}

	for _, lang := range langs {
		if lang == requested {
			return lang, nil
		}
	}

	tags := make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tags = append(tags, language.Make(lang))
	}
	matcher := language.NewMatcher(tags)
	_, index, _ := matcher.Match(language.Make(requested))
	return langs[index], nil
}

// Bundle is one language's full translation table, namespace -> key tree.
type Bundle map[string]map[string]interface{}

// Load reads and merges every namespace file of a language, cached until the
// TTL expires. Namespaces are keyed by file name so none clobbers another.
func (l *Loader) Load(lang string) (Bundle, error) {
	if cached, ok := l.cache.Get("lang:" + lang); ok {
		return cached.(Bundle), nil
	}

	dir := filepath.Join(l.root, lang)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	bundle := make(Bundle)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var table map[string]interface{}
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("bad locale file %s/%s: %w", lang, e.Name(), err)
		}
		bundle[strings.TrimSuffix(e.Name(), ".json")] = table
	}

	l.cache.Set("lang:"+lang, bundle, gocache.DefaultExpiration)
	return bundle, nil
}

// LoadNamespace returns one namespace of one language.
func (l *Loader) LoadNamespace(lang, namespace string) (map[string]interface{}, error) {
	bundle, err := l.Load(lang)
	if err != nil {
		return nil, err
	}
	table, ok := bundle[namespace]
	if !ok {
		return nil, fmt.Errorf("namespace %q not found for %s", namespace, lang)
	}
	return table, nil
}
