package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// DecodeFrontmatter unmarshals the YAML header into out and returns the body.
// Content without a header is returned whole with found=false.
func DecodeFrontmatter(content string, out any) (body string, found bool, err error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence) {
		return content, false, nil
	}
	rest := strings.TrimPrefix(content, fence)
	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return "", false, fmt.Errorf("frontmatter has no closing fence")
	}
	if err := yaml.Unmarshal([]byte(rest[:idx]), out); err != nil {
		return "", false, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return rest[idx+len("\n"+fence):], true, nil
}

// RenderFrontmatter writes meta as a YAML header above body. Struct values
// keep their field order.
func RenderFrontmatter(meta any, body string) (string, error) {
	var raw bytes.Buffer
	enc := yaml.NewEncoder(&raw)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var out strings.Builder
	out.WriteString(fence)
	out.Write(raw.Bytes())
	out.WriteString(fence)
	if !strings.HasPrefix(body, "\n") {
		out.WriteString("\n")
	}
	out.WriteString(body)
	return out.String(), nil
}
