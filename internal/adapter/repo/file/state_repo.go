// Package filerepo persists the pet as a JSON document and its history as
// JSON lines under the pet home directory.
package filerepo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"
)

type PetStateRepo struct {
	path string
}

func NewPetStateRepo(path string) PetStateRepo {
	return PetStateRepo{path: path}
}

func (r PetStateRepo) Load(_ context.Context) (pet.State, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pet.State{}, ports.ErrNotFound
		}
		return pet.State{}, fmt.Errorf("read %s: %w", r.path, err)
	}
	var state pet.State
	if err := json.Unmarshal(b, &state); err != nil {
		return pet.State{}, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return state, nil
}

// Save replaces the file atomically so a concurrent reader never sees a
// partial document.
func (r PetStateRepo) Save(_ context.Context, state pet.State) error {
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pet state: %w", err)
	}
	return writeFileAtomic(r.path, append(b, '\n'))
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := bytes.NewReader(data).WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
