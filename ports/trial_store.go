package ports

import (
	"context"

	"biasaudit/domain/trial"
)

// TrialWriterPort is the single mutation point of a session: append-only
type TrialWriterPort interface {
	Append(ctx context.Context, t trial.Trial) error
}

// TrialReaderPort hands out immutable snapshots in insertion order
type TrialReaderPort interface {
	Len() int
	Snapshot() []trial.Trial
}

// TrialStorePort combines read and write access
type TrialStorePort interface {
	TrialWriterPort
	TrialReaderPort
}
