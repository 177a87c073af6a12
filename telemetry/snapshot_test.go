package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const bareBrain = `{"levels":[{"inputs":[0],"outputs":[0],"biases":[0.5],"weights":[[0.25]]}]}`

func TestBrainDocumentSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brains", "best.json")

	doc := &BrainDocument{
		RNGSeed:    42,
		Generation: 17,
		Fitness:    12,
		Brain:      json.RawMessage(bareBrain),
	}
	if err := SaveBrainDocument(doc, path); err != nil {
		t.Fatalf("SaveBrainDocument failed: %v", err)
	}

	loaded, err := LoadBrainDocument(path)
	if err != nil {
		t.Fatalf("LoadBrainDocument failed: %v", err)
	}

	if loaded.Version != BrainDocumentVersion {
		t.Errorf("version = %d, want %d", loaded.Version, BrainDocumentVersion)
	}
	if loaded.Generation != 17 || loaded.Fitness != 12 || loaded.RNGSeed != 42 {
		t.Errorf("metadata = %+v", loaded)
	}

	var a, b any
	if err := json.Unmarshal(loaded.Brain, &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(bareBrain), &b); err != nil {
		t.Fatal(err)
	}
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	if string(aj) != string(bj) {
		t.Errorf("brain = %s, want %s", aj, bj)
	}
}

func TestLoadBareBrainDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bestBrain.json")
	if err := os.WriteFile(path, []byte(bareBrain+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadBrainDocument(path)
	if err != nil {
		t.Fatalf("LoadBrainDocument failed: %v", err)
	}
	if doc.Version != 0 {
		t.Errorf("version = %d, want 0 for a bare document", doc.Version)
	}
	if string(doc.Brain) != bareBrain {
		t.Errorf("brain = %s, want the whole file", doc.Brain)
	}
}

func TestLoadBrainDocumentErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBrainDocument(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBrainDocument(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
