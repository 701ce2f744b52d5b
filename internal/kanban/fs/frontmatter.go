package fs

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

var delimiter = []byte("---")

// splitFrontmatter separates a leading YAML block from the markdown body.
// Content without a closed block is returned as body with nil frontmatter.
func splitFrontmatter(content []byte) (frontmatter, body []byte) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), delimiter) {
		return nil, content
	}

	end := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), delimiter) {
			end = i
			break
		}
	}
	if end == 0 {
		return nil, content
	}

	frontmatter = bytes.Join(lines[1:end], []byte("\n"))
	body = bytes.TrimLeft(bytes.Join(lines[end+1:], []byte("\n")), "\n")
	return frontmatter, body
}

// writeFrontmatter emits v as a YAML block followed by a blank line
func writeFrontmatter(buf *bytes.Buffer, v interface{}) error {
	yamlBytes, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")
	return nil
}
