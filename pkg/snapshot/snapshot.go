// Package snapshot compares values against JSON files stored in testdata
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	mu    sync.Mutex
	calls = make(map[string]int)
)

// ValidateSnapshot marshals obj and compares it to testdata/<Func>-<n>.json, where n counts
// the calls made from the same test function. A missing file is written instead.
// depth is how many frames to skip past the caller when naming the file.
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()

	filename := nextFilename(1 + depth)

	got, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not marshal snapshot: %v", err)
	}

	want, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		write(t, filename, got)
		return
	} else if err != nil {
		t.Fatalf("could not read snapshot: %v", err)
	}

	if !assert.Equal(t, strings.TrimSpace(string(want)), strings.TrimSpace(string(got)), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func nextFilename(skip int) string {
	pc, _, _, _ := runtime.Caller(skip + 1)
	name := filepath.Base(runtime.FuncForPC(pc).Name())

	mu.Lock()
	defer mu.Unlock()

	n := calls[name]
	calls[name] = n + 1

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, n))
}

func write(t *testing.T, filename string, data []byte) {
	t.Helper()

	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("could not create snapshot directory: %v", err)
	}

	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		t.Fatalf("could not write snapshot: %v", err)
	}
}
