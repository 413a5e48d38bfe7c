package model

import "time"

const TableNamePetState = "pet_states"

type PetState struct {
	PetID     string    `gorm:"column:pet_id;primaryKey" json:"pet_id"`
	Mood      string    `gorm:"column:mood;not null" json:"mood"`
	Energy    int32     `gorm:"column:energy;not null" json:"energy"`
	Xp        int64     `gorm:"column:xp;not null" json:"xp"`
	Level     int64     `gorm:"column:level;not null" json:"level"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (*PetState) TableName() string {
	return TableNamePetState
}
