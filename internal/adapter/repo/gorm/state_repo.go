package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"terminalpet/internal/adapter/repo/gorm/model"
	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PetStateRepo struct {
	db    *gorm.DB
	petID string
	now   func() time.Time
}

func NewPetStateRepo(db *gorm.DB) PetStateRepo {
	return PetStateRepo{db: db, petID: DefaultPetID, now: time.Now}
}

func (r PetStateRepo) Load(ctx context.Context) (pet.State, error) {
	var m model.PetState
	if err := dbFromCtx(ctx, r.db).Where("pet_id = ?", r.petID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.State{}, ports.ErrNotFound
		}
		return pet.State{}, err
	}
	return toDomainState(m)
}

// Save upserts the single pet row; concurrent writers race and the last one wins.
// Inside RunInTx the write runs under a savepoint, so a failed save leaves the
// surrounding transaction usable.
func (r PetStateRepo) Save(ctx context.Context, state pet.State) error {
	m := model.PetState{
		PetID:     r.petID,
		Mood:      state.Mood.String(),
		Energy:    int32(state.Energy),
		Xp:        int64(state.XP),
		Level:     int64(state.Level),
		UpdatedAt: r.now().UTC(),
	}
	return dbFromCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pet_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"mood", "energy", "xp", "level", "updated_at"}),
		}).Create(&m).Error
	})
}

func toDomainState(m model.PetState) (pet.State, error) {
	mood, err := pet.ParseMood(m.Mood)
	if err != nil {
		return pet.State{}, fmt.Errorf("pet %s: %w", m.PetID, err)
	}
	if m.Xp < 0 || m.Xp > math.MaxUint32 {
		return pet.State{}, fmt.Errorf("pet %s: xp %d out of range", m.PetID, m.Xp)
	}
	return pet.State{
		Mood:   mood,
		Energy: int(m.Energy),
		XP:     uint32(m.Xp),
		Level:  uint32(m.Level),
	}, nil
}
