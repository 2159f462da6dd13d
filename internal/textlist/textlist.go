// Package textlist stores parsed texts as JSON and turns them into prompts.
package textlist

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/wpm/internal/model"
)

// Load reads a JSON list of records from path.
func Load(path string) ([]model.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only prompt list.
			_ = cerr
		}
	}()

	var records []model.Record
	if err := json.NewDecoder(bufio.NewReader(file)).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode prompt list: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("prompt list is empty")
	}
	return records, nil
}

// Save writes records to path as indented JSON, replacing the file atomically.
func Save(path string, records []model.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create prompt list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "prompts-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp prompt list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if records == nil {
		records = []model.Record{}
	}
	writer := bufio.NewWriter(tmpFile)
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode prompt list: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush prompt list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close prompt list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write prompt list: %w", err)
	}
	return nil
}

// Prompts converts records to prompts labelled with the record id.
func Prompts(records []model.Record) []model.Prompt {
	prompts := make([]model.Prompt, 0, len(records))
	for _, r := range records {
		prompts = append(prompts, model.Prompt{Text: r.Text, Source: r.ID})
	}
	return prompts
}
