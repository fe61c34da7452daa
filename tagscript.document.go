package tagscript

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLFrontmatterDelimiter separates frontmatter from the script body.
const YAMLFrontmatterDelimiter = "---"

// Document is a tag script file: optional YAML frontmatter (name,
// description, metadata) followed by the script body. Documents are the
// interchange format for moving stored scripts in and out of a backend.
type Document struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`

	// Body is the tag script itself. Not part of the frontmatter.
	Body string `yaml:"-"`
}

// ParseDocument parses a document (YAML frontmatter + body). A document
// without frontmatter is all body.
func ParseDocument(data []byte) (*Document, error) {
	content := string(data)
	content = strings.TrimLeft(content, "\xef\xbb\xbf \t")

	if !strings.HasPrefix(content, YAMLFrontmatterDelimiter) {
		return &Document{Body: content}, nil
	}

	afterOpening := content[len(YAMLFrontmatterDelimiter):]
	if len(afterOpening) > 0 && afterOpening[0] == '\n' {
		afterOpening = afterOpening[1:]
	} else if len(afterOpening) > 1 && afterOpening[0] == '\r' && afterOpening[1] == '\n' {
		afterOpening = afterOpening[2:]
	}

	closeIdx := strings.Index(afterOpening, "\n"+YAMLFrontmatterDelimiter)
	if closeIdx == -1 {
		return nil, NewDocumentError(ErrMsgDocumentFrontmatter, nil)
	}

	fmYAML := afterOpening[:closeIdx]

	bodyStart := closeIdx + len("\n"+YAMLFrontmatterDelimiter)
	body := ""
	if bodyStart < len(afterOpening) {
		body = afterOpening[bodyStart:]
		if len(body) > 0 && body[0] == '\n' {
			body = body[1:]
		} else if len(body) > 1 && body[0] == '\r' && body[1] == '\n' {
			body = body[2:]
		}
	}

	var doc Document
	if err := yaml.Unmarshal([]byte(fmYAML), &doc); err != nil {
		return nil, NewDocumentError(ErrMsgDocumentFrontmatter, err)
	}
	doc.Body = body
	return &doc, nil
}

// ParseDocumentFile reads and parses a document from disk.
func ParseDocumentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError(ErrMsgDocumentFrontmatter, err)
	}
	return ParseDocument(data)
}

// Export serializes the document back to frontmatter + body form. A document
// with no frontmatter fields exports as its bare body.
func (d *Document) Export() ([]byte, error) {
	if d.Name == "" && d.Description == "" && len(d.Metadata) == 0 {
		return []byte(d.Body), nil
	}
	fm, err := yaml.Marshal(d)
	if err != nil {
		return nil, NewDocumentError(ErrMsgDocumentExport, err)
	}
	var sb strings.Builder
	sb.WriteString(YAMLFrontmatterDelimiter)
	sb.WriteByte('\n')
	sb.Write(fm)
	sb.WriteString(YAMLFrontmatterDelimiter)
	sb.WriteByte('\n')
	sb.WriteString(d.Body)
	return []byte(sb.String()), nil
}

// ToStored converts a document into a StoredScript ready for a backend.
func (d *Document) ToStored() *StoredScript {
	return &StoredScript{
		Name:        d.Name,
		Source:      d.Body,
		Description: d.Description,
		Metadata:    d.Metadata,
	}
}

// DocumentFromStored converts a StoredScript into an exportable document.
func DocumentFromStored(s *StoredScript) *Document {
	return &Document{
		Name:        s.Name,
		Description: s.Description,
		Metadata:    s.Metadata,
		Body:        s.Source,
	}
}
