package ports

import "forestguardian/internal/domain/guardian"

// DecisionMetrics tallies arbitration outcomes for the KPI endpoint.
type DecisionMetrics interface {
	RecordDecision(source guardian.Source)
	RecordPolicyFailure()
	RecordOutcome(status string)
}
