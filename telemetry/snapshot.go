package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BrainDocumentVersion is incremented when the format changes.
const BrainDocumentVersion = 1

// BrainDocument wraps an encoded brain with where it came from.
type BrainDocument struct {
	Version    int   `json:"version"`
	RNGSeed    int64 `json:"rng_seed"`
	Generation int   `json:"generation"`
	Fitness    int   `json:"fitness"`

	Brain json.RawMessage `json:"brain"`
}

// SaveBrainDocument writes a brain document to path, creating parent
// directories as needed.
func SaveBrainDocument(doc *BrainDocument, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create brain dir: %w", err)
		}
	}

	doc.Version = BrainDocumentVersion
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal brain document: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write brain document: %w", err)
	}
	return nil
}

// LoadBrainDocument reads a brain document from disk. A bare network document
// without the wrapper is accepted and returned with Version 0.
func LoadBrainDocument(path string) (*BrainDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read brain document: %w", err)
	}
	return ParseBrainDocument(data)
}

// ParseBrainDocument decodes a wrapped or bare brain document.
func ParseBrainDocument(data []byte) (*BrainDocument, error) {
	var doc BrainDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal brain document: %w", err)
	}

	if len(doc.Brain) == 0 || bytes.Equal(doc.Brain, []byte("null")) {
		return &BrainDocument{Brain: json.RawMessage(bytes.TrimSpace(data))}, nil
	}
	return &doc, nil
}
