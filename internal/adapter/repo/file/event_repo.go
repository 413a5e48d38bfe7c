package filerepo

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"terminalpet/internal/app/ports"
)

const maxLineBytes = 64 * 1024

type EventRepo struct {
	path string
}

func NewEventRepo(path string) EventRepo {
	return EventRepo{path: path}
}

func (r EventRepo) Append(_ context.Context, record ports.EventRecord) error {
	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode event record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(r.path), err)
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("append %s: %w", r.path, err)
	}
	return f.Close()
}

// ListRecent skips lines it cannot decode rather than failing the whole log.
func (r EventRepo) ListRecent(_ context.Context, limit int) ([]ports.EventRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	all := []ports.EventRecord{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec ports.EventRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		all = append(all, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.path, err)
	}
	if len(all) == 0 {
		return nil, ports.ErrNotFound
	}

	n := len(all)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]ports.EventRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
