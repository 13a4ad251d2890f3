// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dex-browser/pkg/types"
)

// Format selects the output encoding of the non-interactive commands.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ListOutput is the machine-readable form of one browse page.
type ListOutput struct {
	URL      string                `json:"url" yaml:"url"`
	Records  []types.RecordSummary `json:"records" yaml:"records"`
	Next     string                `json:"next,omitempty" yaml:"next,omitempty"`
	Previous string                `json:"previous,omitempty" yaml:"previous,omitempty"`
}

// SearchOutput is the machine-readable form of one page of search results.
type SearchOutput struct {
	Term    string                `json:"term" yaml:"term"`
	Matches int                   `json:"matches" yaml:"matches"`
	Page    int                   `json:"page" yaml:"page"`
	Pages   int                   `json:"pages" yaml:"pages"`
	Records []types.RecordSummary `json:"records" yaml:"records"`
}

// Encode writes v to w as JSON or YAML.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
