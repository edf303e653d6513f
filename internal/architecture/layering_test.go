package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const modulesPrefix = "tvshell/internal/modules/"

var layers = []string{"adapter/in", "adapter/out", "port/in", "port/out", "service", "domain", "dto"}

// allowed lists the layers each layer may import, inside its own module.
var allowed = map[string][]string{
	"domain":      {"domain"},
	"dto":         {"domain", "dto"},
	"port/in":     {"domain", "dto", "port/in", "port/out"},
	"port/out":    {"domain", "dto", "port/out"},
	"service":     {"domain", "dto", "port/in", "port/out"},
	"adapter/in":  {"domain", "dto", "port/in"},
	"adapter/out": {"domain", "dto", "port/in", "port/out"},
}

// crossModule narrows allowed when the import reaches into another module.
// Only services implement or call other modules' ports; adapters and domain
// types see nothing but shared domain and dto packages.
var crossModule = map[string][]string{
	"domain":      {"domain"},
	"dto":         {"domain", "dto"},
	"port/in":     {"domain", "dto", "port/in"},
	"port/out":    {"domain", "dto"},
	"service":     {"domain", "dto", "port/in", "port/out"},
	"adapter/in":  {"domain", "dto"},
	"adapter/out": {"domain", "dto"},
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module, layer := locate(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(importPath, modulesPrefix) {
				continue
			}
			require.Falsef(t, forbidden(module, layer, importPath), "%s (%s) imports %s", slash, layer, importPath)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestLayerRules(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, target string
		forbidden             bool
	}{
		{"overlay", "service", "tiles/port/in", false},
		{"browser", "service", "screen/port/out", false},
		{"overlay", "domain", "autocomplete/domain", false},
		{"intent", "adapter/out", "intent/port/in", false},
		{"overlay", "domain", "tiles/port/out", true},
		{"overlay", "domain", "overlay/service", true},
		{"tiles", "adapter/in", "tiles/port/out", true},
		{"tiles", "adapter/out", "settings/port/out", true},
		{"browser", "service", "overlay/service", true},
		{"screen", "port/out", "session/port/in", true},
		{"screen", "service", "screen/adapter/out", true},
	}
	for _, tc := range cases {
		got := forbidden(tc.module, tc.layer, modulesPrefix+tc.target+"/x")
		require.Equalf(t, tc.forbidden, got, "%s %s -> %s", tc.module, tc.layer, tc.target)
	}
}

// locate returns the module and layer of a file under internal/modules.
func locate(path string) (string, string) {
	_, rest, ok := strings.Cut(path, "modules/")
	if !ok {
		return "", ""
	}
	module, inner, ok := strings.Cut(rest, "/")
	if !ok {
		return "", ""
	}
	return module, layerOf(inner)
}

func layerOf(inner string) string {
	for _, layer := range layers {
		if inner == layer || strings.HasPrefix(inner, layer+"/") {
			return layer
		}
	}
	return ""
}

func forbidden(module, layer, importPath string) bool {
	target, inner, ok := strings.Cut(strings.TrimPrefix(importPath, modulesPrefix), "/")
	if !ok {
		return true
	}
	targetLayer := layerOf(inner)
	if targetLayer == "" {
		return true
	}
	rules := allowed
	if target != module {
		rules = crossModule
	}
	return !slices.Contains(rules[layer], targetLayer)
}
