package analytics

import (
	"os"
	"testing"
)

func summarizeFile(t *testing.T, path string) (*Summary, error) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Summarize(f)
}
