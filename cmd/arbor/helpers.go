package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/config"
	"github.com/aretw0/arbor/pkg/domain"
)

// openEditor opens doc with the config at configPath, already loaded and measured.
func openEditor(configPath string, logger *slog.Logger, doc *domain.MindMap, opts ...arbor.Option) (*arbor.Editor, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	base := []arbor.Option{arbor.WithConfig(cfg), arbor.WithLogger(logger)}
	return arbor.New(doc, append(base, opts...)...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
