package feed

import "terminalpet/internal/domain/pet"

type Request struct {
	EventName string
}

// Response carries the transition result. SaveErr and HistoryErr are warnings:
// the in-memory transition stays authoritative for the invocation.
type Response struct {
	Event      pet.Event `json:"event"`
	Before     pet.State `json:"before"`
	State      pet.State `json:"state"`
	Saved      bool      `json:"saved"`
	SaveErr    error     `json:"-"`
	HistoryErr error     `json:"-"`
}
