// Package report persists the selected gainers as an indented JSON array.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/songzhibin97/cryptogainers/internal/data"
	"github.com/songzhibin97/cryptogainers/internal/models"
)

const (
	keyPrefix   = "data/top_gainers_"
	keySuffix   = ".json"
	contentType = "application/json"
)

type Logger interface {
	Info(msg string, fields ...interface{})
}

type Writer struct {
	store  data.DataStorage
	logger Logger
}

func NewWriter(store data.DataStorage, logger Logger) *Writer {
	return &Writer{store: store, logger: logger}
}

// Key returns the store key of the report for a timestamp key.
func Key(timestamp string) string {
	return keyPrefix + timestamp + keySuffix
}

// Encode renders entries as a JSON array indented with four spaces.
func Encode(entries []models.GainerEntry) ([]byte, error) {
	if entries == nil {
		entries = []models.GainerEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a report produced by Encode.
func Decode(b []byte) ([]models.GainerEntry, error) {
	var entries []models.GainerEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return entries, nil
}

// Write stores entries under the report key for timestamp and returns the
// location reported by the store. Store errors are returned as-is, wrapped.
func (w *Writer) Write(ctx context.Context, entries []models.GainerEntry, timestamp string) (string, error) {
	b, err := Encode(entries)
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	loc, err := w.store.Put(ctx, Key(timestamp), contentType, b)
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	w.logger.Info(fmt.Sprintf("Saved top %d gainers to %s", len(entries), loc))
	return loc, nil
}
