package filerepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"
)

var (
	_ ports.PetStateRepository = PetStateRepo{}
	_ ports.EventRepository    = EventRepo{}
	_ ports.TxManager          = TxManager{}
)

func TestPetStateRepo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pet.json")
	repo := NewPetStateRepo(path)
	ctx := context.Background()

	states := []pet.State{
		pet.New(),
		{Mood: pet.MoodHappy, Energy: 51, XP: 10, Level: 1},
		{Mood: pet.MoodSleeping, Energy: 0, XP: 4294967295, Level: 42949673},
		{Mood: pet.MoodScared, Energy: 100, XP: 250, Level: 3},
	}
	for _, want := range states {
		if err := repo.Save(ctx, want); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got != want {
			t.Fatalf("round trip mismatch: got=%+v want=%+v", got, want)
		}
	}
}

func TestPetStateRepo_WritesReadableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.json")
	if err := NewPetStateRepo(path).Save(context.Background(), pet.State{Mood: pet.MoodHappy, Energy: 51, XP: 10, Level: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{`"mood": "Happy"`, `"energy": 51`, `"xp": 10`, `"level": 1`} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("expected %s in %s", want, b)
		}
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestPetStateRepo_MissingFileIsNotFound(t *testing.T) {
	repo := NewPetStateRepo(filepath.Join(t.TempDir(), "pet.json"))
	if _, err := repo.Load(context.Background()); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPetStateRepo_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := NewPetStateRepo(path).Load(context.Background())
	if err == nil || errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestPetStateRepo_ReadsLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.json")
	legacy := "{\n  \"mood\": \"Sad\",\n  \"energy\": 20,\n  \"xp\": 117,\n  \"level\": 2\n}"
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := NewPetStateRepo(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if want := (pet.State{Mood: pet.MoodSad, Energy: 20, XP: 117, Level: 2}); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestEventRepo_AppendAndListNewestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	repo := NewEventRepo(path)
	ctx := context.Background()

	if _, err := repo.ListRecent(ctx, 10); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first append, got %v", err)
	}

	events := []pet.Event{pet.EventCommit, pet.EventTestPass, pet.EventMergeConflict}
	state := pet.New()
	for i, e := range events {
		next := pet.ApplyEvent(state, e)
		rec := ports.EventRecord{ID: string(rune('A' + i)), Event: e, OccurredAt: time.Unix(int64(100+i), 0).UTC(), Before: state, After: next}
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
		state = next
	}

	got, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Event != pet.EventMergeConflict || got[1].Event != pet.EventTestPass {
		t.Fatalf("unexpected order: %s, %s", got[0].Event, got[1].Event)
	}
	if got[0].After != state {
		t.Fatalf("expected after=%+v, got %+v", state, got[0].After)
	}
	if !got[1].OccurredAt.Equal(time.Unix(101, 0)) {
		t.Fatalf("unexpected occurred_at %s", got[1].OccurredAt)
	}
}

func TestEventRepo_SkipsGarbledLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	content := `{"id":"1","event":"commit","occurred_at":"2024-01-01T00:00:00Z","before":{"mood":"Neutral","energy":50,"xp":0,"level":1},"after":{"mood":"Happy","energy":51,"xp":10,"level":1}}
garbage
{"id":"2","event":"rm-rf","occurred_at":"2024-01-01T00:00:01Z"}

`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := NewEventRepo(path).ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only the valid record, got %+v", got)
	}
}

func TestTxManager_SerialisesCallers(t *testing.T) {
	tx := NewTxManager()
	active := 0
	maxActive := 0
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.RunInTx(context.Background(), func(context.Context) error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	if maxActive != 1 {
		t.Fatalf("expected one caller at a time, saw %d", maxActive)
	}
}
