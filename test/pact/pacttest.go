//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pet-adoption-api"
	ConsumerName = "adoption-portal"

	StatePetAvailable   = "pet with id 1 is available"
	StatePetMissing     = "no pet with id 404"
	StateAdoptionExists = "pending adoption with id 1 for pet 1"
)

const (
	ExistingPetID      int64 = 1
	MissingPetID       int64 = 404
	ExistingAdoptionID int64 = 1

	ExamplePetName = "Pact Caramelo"
	ExamplePetSize = "MEDIO"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleAdoptionRequest provides stable intake data for pact interactions.
func ExampleAdoptionRequest() map[string]any {
	return map[string]any{
		"name":         "Joana Pact",
		"contact":      "41999998888",
		"email":        "joana.pact@example.com",
		"cpf":          "111.222.333-44",
		"observations": "Moro em casa com quintal",
		"pet_id":       ExistingPetID,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
