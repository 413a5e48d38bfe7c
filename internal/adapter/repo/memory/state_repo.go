package memory

import (
	"context"

	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"
)

type PetStateRepo struct {
	store *Store
}

func NewPetStateRepo(store *Store) PetStateRepo {
	return PetStateRepo{store: store}
}

func (r PetStateRepo) Load(ctx context.Context) (pet.State, error) {
	var (
		state pet.State
		err   error
	)
	r.store.locked(ctx, func() {
		if r.store.state == nil {
			err = ports.ErrNotFound
			return
		}
		state = *r.store.state
	})
	return state, err
}

func (r PetStateRepo) Save(ctx context.Context, state pet.State) error {
	r.store.locked(ctx, func() {
		r.store.state = &state
	})
	return nil
}
