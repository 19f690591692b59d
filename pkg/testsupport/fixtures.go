package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// LoadJSONFixture decodes a JSON fixture into v.
func LoadJSONFixture(path string, v any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// MustLoadJSONFixture decodes a page or payload fixture and fails the test
// when it cannot be read.
func MustLoadJSONFixture(tb testing.TB, path string, v any) {
	tb.Helper()
	if err := LoadJSONFixture(path, v); err != nil {
		tb.Fatalf("load fixture %s: %v", path, err)
	}
}
