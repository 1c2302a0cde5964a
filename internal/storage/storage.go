package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"netdash/internal/topology"
)

// LoadDocument reads a topology document from path. A missing file yields an
// error satisfying errors.Is(err, os.ErrNotExist).
func LoadDocument(path string) (topology.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return topology.Document{}, fmt.Errorf("read topology: %w", err)
	}

	var doc topology.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return topology.Document{}, fmt.Errorf("parse topology: %w", err)
	}
	if len(doc.Devices) == 0 {
		return topology.Document{}, fmt.Errorf("topology %s defines no devices", path)
	}
	return doc, nil
}

// SaveDocument writes doc to path, replacing any existing file atomically.
func SaveDocument(path string, doc topology.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure topology directory: %w", err)
	}

	bytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode topology: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", path, time.Now().UnixNano())
	if err := os.WriteFile(tmpPath, bytes, 0o644); err != nil {
		return fmt.Errorf("write temp topology: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace topology file: %w", err)
	}
	return nil
}

// EncodeDocument writes doc as indented JSON.
func EncodeDocument(w io.Writer, doc topology.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode topology: %w", err)
	}
	return nil
}
