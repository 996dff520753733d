package match

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/okkonen/kinship/internal/model"
)

// LoadSnapshot reads a read-only individual/record pool from a JSON file.
// The snapshot format mirrors the storage collaborator contract:
// {"individuals": [...], "records": [...]}.
func LoadSnapshot(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}
