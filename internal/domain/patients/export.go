package patients

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return ExportJSON, nil
	case "yaml", "yml":
		return ExportYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", ErrInvalidInput, s)
	}
}

// ContentType del formato para respuestas HTTP.
func (f ExportFormat) ContentType() string {
	if f == ExportYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Encode escribe el listado completo en el formato pedido.
func Encode(w io.Writer, format ExportFormat, items []Patient) error {
	if items == nil {
		items = []Patient{}
	}

	switch format {
	case ExportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	default:
		return fmt.Errorf("%w: unknown export format %q", ErrInvalidInput, format)
	}
}
