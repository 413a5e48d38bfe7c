package status

import "terminalpet/internal/domain/pet"

type Request struct{}

type Response struct {
	State     pet.State `json:"state"`
	Persisted bool      `json:"persisted"`
}
