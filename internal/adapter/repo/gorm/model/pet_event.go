package model

import "time"

const TableNamePetEvent = "pet_events"

type PetEvent struct {
	EventID    string    `gorm:"column:event_id;primaryKey" json:"event_id"`
	PetID      string    `gorm:"column:pet_id;not null" json:"pet_id"`
	Event      string    `gorm:"column:event;not null" json:"event"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Before     []byte    `gorm:"column:state_before;type:jsonb;not null" json:"state_before"`
	After      []byte    `gorm:"column:state_after;type:jsonb;not null" json:"state_after"`
}

func (*PetEvent) TableName() string {
	return TableNamePetEvent
}
