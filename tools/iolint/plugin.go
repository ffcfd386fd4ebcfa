package iolint

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"
)

func init() {
	register.Plugin("iolint", New)
}

// New creates a new iolint plugin for golangci-lint.
func New(settings any) (register.LinterPlugin, error) {
	s, err := register.DecodeSettings[PluginSettings](settings)
	if err != nil {
		return nil, err
	}
	return &iolintPlugin{settings: s}, nil
}

// PluginSettings represents the settings passed from golangci-lint.
type PluginSettings struct {
	Config string `json:"config"`
}

type iolintPlugin struct {
	settings PluginSettings
}

func (p *iolintPlugin) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	cfg, err := loadConfig(p.settings.Config)
	if err != nil {
		return nil, err
	}
	return []*analysis.Analyzer{NewAnalyzer(cfg)}, nil
}

func (p *iolintPlugin) GetLoadMode() string {
	return register.LoadModeSyntax
}
