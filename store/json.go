package store

import (
	"encoding/json"
	"errors"
	"os"

	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a keyed record is absent from a store.
var ErrNotFound = errors.New("record not found")

// Load reads a JSON snapshot from path. A missing or unparsable file yields
// the zero value of T so a fresh deployment starts from defaults.
func Load[T any](path string) T {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		log.Infof("Snapshot %s not found, starting fresh: %v", path, err)
		return v
	}
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warnf("Snapshot %s is unparsable, using defaults: %v", path, err)
		var zero T
		return zero
	}
	log.Infof("Loaded snapshot: %s", path)
	return v
}

// Save writes a JSON snapshot to path. Failures are logged and never
// surfaced; the in-memory state stays authoritative for the process.
func Save(path string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Errorf("Failed to serialize snapshot %s: %v", path, err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Errorf("Failed to write snapshot %s: %v", path, err)
	}
}
