package initialize

import (
	"bytes"
	"fmt"

	"github.com/cnleo/bumphook/internal/config"
	"github.com/goccy/go-yaml"
)

// GenerateConfigWithComments marshals cfg to YAML with an explanatory
// header, so a generated .bumphook.yaml is self-documenting.
func GenerateConfigWithComments(cfg *config.Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# bumphook configuration file\n")
	buf.WriteString("# Documentation: https://github.com/cnleo/bumphook\n")
	buf.WriteString("# Generated by 'bumphook init'\n")
	buf.WriteString("\n")
	buf.Write(body)

	return buf.Bytes(), nil
}
