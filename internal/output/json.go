package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/law-makers/ementas/pkg/models"
)

// MarshalRecords encodes the collection as a compact JSON array. HTML
// escaping is off so accented Portuguese text is written as plain UTF-8;
// key order follows the struct (cabecalho, ementa), which keeps
// re-serialization byte-stable. No trailing newline: the file is exactly
// the array.
func MarshalRecords(records []models.EmentaRecord) ([]byte, error) {
	if records == nil {
		records = []models.EmentaRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalRecords parses a JSON array previously written by SaveJSON.
func UnmarshalRecords(data []byte) ([]models.EmentaRecord, error) {
	var records []models.EmentaRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records JSON: %w", err)
	}
	return records, nil
}

// SaveJSON overwrites the structured output at filepath.
func SaveJSON(records []models.EmentaRecord, filepath string) error {
	content, err := MarshalRecords(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath, content, 0644); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
