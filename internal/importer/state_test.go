package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("opening state db: %v", err)
	}
	defer state.Close()

	imported, err := state.IsImported("march.csv", 123, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if imported {
		t.Error("fresh db reports file as imported")
	}

	if err := state.MarkImported("march.csv", 123, "abc"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}

	imported, err = state.IsImported("march.csv", 123, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if !imported {
		t.Error("marked file not reported as imported")
	}

	// A changed file (different hash) must be re-imported.
	imported, err = state.IsImported("march.csv", 123, "def")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if imported {
		t.Error("file with different hash reported as imported")
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	if err := os.WriteFile(path, []byte("session,2026-03-10\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h1 != h2 {
		t.Errorf("hash not stable: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
}
