package replay

import (
	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"
)

type Request struct {
	Limit int
}

type Response struct {
	Events      []ports.EventRecord `json:"events"`
	LatestState pet.State           `json:"latest_state"`
}
