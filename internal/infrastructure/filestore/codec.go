package filestore

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/opsbench/opsctl/internal/core/domain/kubeconfig"
)

var (
	errEmptyDocument     = errors.New("document is empty")
	errNotMapping        = errors.New("document root is not a mapping")
	errMultipleDocuments = errors.New("file holds more than one YAML document")
)

// Decode parses a kubeconfig. It fails with errEmptyDocument when data holds
// no YAML content, errNotMapping when the root is a list or scalar and
// errMultipleDocuments when more than one document carries content. Empty
// documents around the content, such as a trailing "---", are ignored.
func Decode(data []byte) (*kubeconfig.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyDocument
	}

	var root *yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if isEmptyDocument(&node) {
			continue
		}
		if root != nil {
			return nil, errMultipleDocuments
		}
		root = node.Content[0]
	}
	if root == nil {
		return nil, errEmptyDocument
	}
	if root.Kind != yaml.MappingNode {
		return nil, errNotMapping
	}

	var doc kubeconfig.Document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

func isEmptyDocument(node *yaml.Node) bool {
	if node.Kind == 0 || len(node.Content) == 0 {
		return true
	}
	content := node.Content[0]
	return content.Kind == yaml.ScalarNode && content.ShortTag() == "!!null"
}

// Encode serializes doc with two-space indentation. Output is deterministic
// for equal documents.
func Encode(doc *kubeconfig.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}
