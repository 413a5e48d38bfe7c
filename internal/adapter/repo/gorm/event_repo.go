package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"terminalpet/internal/adapter/repo/gorm/model"
	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db    *gorm.DB
	petID string
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db, petID: DefaultPetID}
}

func (r EventRepo) Append(ctx context.Context, record ports.EventRecord) error {
	before, err := json.Marshal(record.Before)
	if err != nil {
		return fmt.Errorf("encode state_before: %w", err)
	}
	after, err := json.Marshal(record.After)
	if err != nil {
		return fmt.Errorf("encode state_after: %w", err)
	}
	row := model.PetEvent{
		EventID:    record.ID,
		PetID:      r.petID,
		Event:      record.Event.String(),
		OccurredAt: record.OccurredAt,
		Before:     before,
		After:      after,
	}
	return dbFromCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
}

func (r EventRepo) ListRecent(ctx context.Context, limit int) ([]ports.EventRecord, error) {
	rows := []model.PetEvent{}
	query := dbFromCtx(ctx, r.db).
		Where(&model.PetEvent{PetID: r.petID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "event_id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.EventRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := toEventRecord(row)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func toEventRecord(row model.PetEvent) (ports.EventRecord, error) {
	event, err := pet.ParseEvent(row.Event)
	if err != nil {
		return ports.EventRecord{}, err
	}
	rec := ports.EventRecord{ID: row.EventID, Event: event, OccurredAt: row.OccurredAt}
	if err := json.Unmarshal(row.Before, &rec.Before); err != nil {
		return ports.EventRecord{}, fmt.Errorf("decode state_before: %w", err)
	}
	if err := json.Unmarshal(row.After, &rec.After); err != nil {
		return ports.EventRecord{}, fmt.Errorf("decode state_after: %w", err)
	}
	return rec, nil
}
