package ports

import "terminalpet/internal/domain/pet"

type EventMetrics interface {
	RecordApplied(event pet.Event)
	RecordRejected()
	RecordSaveFailure()
}
