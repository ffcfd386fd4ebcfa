// Package iolint provides a linter that detects direct filesystem and process
// operations in scanned packages. Code outside the allowed packages must go
// through util.Env so it stays testable with afero and the mock runner.
package iolint

import (
	"fmt"
	"go/ast"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/tools/go/analysis"
)

var configFile string

// Rule forbids a set of functions from one import path.
type Rule struct {
	Package string   `toml:"package"`
	Calls   []string `toml:"calls"`
	Hint    string   `toml:"hint"`
}

// Config represents the iolint configuration.
type Config struct {
	ScanDirs        []string `toml:"scan_dirs"`
	AllowedPackages []string `toml:"allowed_packages"`
	CheckTests      bool     `toml:"check_tests"`
	Rules           []Rule   `toml:"rules"`
}

// Analyzer is the iolint analyzer. Its config is read from the -config flag.
var Analyzer = &analysis.Analyzer{
	Name: "iolint",
	Doc:  "detects direct filesystem and process operations outside the packages allowed to perform them",
	Run: func(pass *analysis.Pass) (any, error) {
		cfg, err := loadConfig(configFile)
		if err != nil {
			return nil, err
		}
		return run(pass, cfg)
	},
}

func init() {
	Analyzer.Flags.StringVar(&configFile, "config", "", "path to iolint config file (required)")
}

// NewAnalyzer returns an analyzer bound to cfg instead of a config file.
func NewAnalyzer(cfg *Config) *analysis.Analyzer {
	return &analysis.Analyzer{
		Name: Analyzer.Name,
		Doc:  Analyzer.Doc,
		Run: func(pass *analysis.Pass) (any, error) {
			return run(pass, cfg)
		},
	}
}

func loadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required (use -config flag)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	for i, r := range cfg.Rules {
		if r.Package == "" {
			return nil, fmt.Errorf("rules[%d]: package is required", i)
		}
	}

	return &cfg, nil
}

// forbidden maps import path -> function name -> hint.
type forbidden map[string]map[string]string

func (c *Config) forbidden() forbidden {
	f := make(forbidden)
	for _, r := range c.Rules {
		if f[r.Package] == nil {
			f[r.Package] = make(map[string]string)
		}
		for _, fn := range r.Calls {
			f[r.Package][fn] = r.Hint
		}
	}
	return f
}

func run(pass *analysis.Pass, cfg *Config) (any, error) {
	pkgPath := pass.Pkg.Path()
	if !shouldScanPackage(pkgPath, cfg.ScanDirs) || isAllowedPackage(pkgPath, cfg.AllowedPackages) {
		return nil, nil
	}

	calls := cfg.forbidden()

	for _, file := range pass.Files {
		if !cfg.CheckTests && strings.HasSuffix(pass.Fset.File(file.Pos()).Name(), "_test.go") {
			continue
		}
		imports := buildImportMap(file)

		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			ident, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}
			importPath, ok := imports[ident.Name]
			if !ok {
				return true
			}

			hint, ok := calls[importPath][sel.Sel.Name]
			if !ok {
				return true
			}
			msg := fmt.Sprintf("direct call %s.%s is not allowed in this package", ident.Name, sel.Sel.Name)
			if hint != "" {
				msg += " (" + hint + ")"
			}
			pass.Reportf(call.Pos(), "%s", msg)
			return true
		})
	}

	return nil, nil
}

// shouldScanPackage checks if the package path should be scanned based on scan_dirs config.
func shouldScanPackage(pkgPath string, scanDirs []string) bool {
	for _, dir := range scanDirs {
		if strings.Contains(pkgPath, "/"+dir) || strings.HasPrefix(pkgPath, dir) {
			return true
		}
	}
	return false
}

// isAllowedPackage checks if pkgPath matches any allowed package or is a subpackage of it.
func isAllowedPackage(pkgPath string, allowedPackages []string) bool {
	for _, allowed := range allowedPackages {
		if matchesPackagePath(pkgPath, allowed) {
			return true
		}
	}
	return false
}

// matchesPackagePath checks if pkgPath matches the pattern or is a subpackage of it.
// Pattern example: "internal/util"
func matchesPackagePath(pkgPath, pattern string) bool {
	return strings.HasSuffix(pkgPath, "/"+pattern) ||
		strings.Contains(pkgPath, "/"+pattern+"/") ||
		pkgPath == pattern ||
		strings.HasPrefix(pkgPath, pattern+"/")
}

// buildImportMap builds a map from import alias to package path.
func buildImportMap(file *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		var name string
		if imp.Name != nil {
			name = imp.Name.Name
		} else {
			parts := strings.Split(path, "/")
			name = parts[len(parts)-1]
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = path
	}
	return imports
}
