package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// envelope is the {"books": [...]} document shape written by this package.
type envelope struct {
	Books []entities.BookRecord `json:"books"`
}

const envelopeKey = "books"

// DecodeDocument parses either a bare array of records or an object holding
// that array. The object may use any single key; "books" wins when present
// alongside others. An object with no recognizable array is an error.
func DecodeDocument(data []byte) ([]entities.BookRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []entities.BookRecord{}, nil
	}

	if trimmed[0] == '[' {
		return decodeArray(trimmed)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode book document: %w", err)
	}

	if raw, ok := doc[envelopeKey]; ok {
		return decodeEnvelopeValue(envelopeKey, raw)
	}
	switch len(doc) {
	case 0:
		return []entities.BookRecord{}, nil
	case 1:
		for key, raw := range doc {
			return decodeEnvelopeValue(key, raw)
		}
	}
	return nil, fmt.Errorf("decode book document: expected one key holding the book array, found %d keys", len(doc))
}

func decodeEnvelopeValue(key string, raw json.RawMessage) ([]entities.BookRecord, error) {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return []entities.BookRecord{}, nil
	}
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("decode book document: key %q does not hold an array", key)
	}
	return decodeArray(raw)
}

func decodeArray(data []byte) ([]entities.BookRecord, error) {
	var records []entities.BookRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode book array: %w", err)
	}
	return normalize(records), nil
}

// EncodeDocument renders records as an indented document.
func EncodeDocument(records []entities.BookRecord, useEnvelope bool) ([]byte, error) {
	if records == nil {
		records = []entities.BookRecord{}
	}
	var v any = records
	if useEnvelope {
		v = envelope{Books: records}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode book document: %w", err)
	}
	return append(data, '\n'), nil
}

// ReadDocument loads the records stored at path. A missing file is an empty
// collection.
func ReadDocument(path string) ([]entities.BookRecord, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []entities.BookRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeDocument(data)
}

// WriteDocument replaces the document at path by writing a sibling temp file
// and renaming it into place.
func WriteDocument(path string, records []entities.BookRecord, useEnvelope bool) error {
	data, err := EncodeDocument(records, useEnvelope)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// normalize drops empty completion values and any completion left on an
// unread record.
func normalize(records []entities.BookRecord) []entities.BookRecord {
	if records == nil {
		return []entities.BookRecord{}
	}
	for i := range records {
		records[i].CompletedAt = entities.CompletionFor(records[i].IsRead, records[i].CompletedAt)
	}
	return records
}
