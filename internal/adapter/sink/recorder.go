// Package sink contains StepSink adapters that bridge the episode loop to
// persistence without ever feeding back into simulation state.
package sink

import (
	"context"

	"forestguardian/internal/app/ports"
)

// Recorder persists the per-step decision log and, on the terminal step,
// the episode summary. Both writes share one transaction so a crashed write
// never leaves a summary without its log.
type Recorder struct {
	Tx       ports.TxManager
	Episodes ports.EpisodeRepository
	Events   ports.DecisionEventRepository
}

func (r Recorder) OnStep(ctx context.Context, snap ports.StepSnapshot) error {
	return r.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := r.Events.Append(txCtx, snap.EpisodeID, snap.Decisions); err != nil {
			return err
		}
		if snap.Terminal && snap.Summary != nil {
			return r.Episodes.SaveSummary(txCtx, *snap.Summary)
		}
		return nil
	})
}
