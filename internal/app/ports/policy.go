package ports

import "forestguardian/internal/domain/forest"

// Policy is the contract for the externally trained decision policy behind
// the Navegador. Decide must be read-only with respect to the observation
// and return a valid action code in [0,6]; any error or out-of-range code is
// treated as a recoverable PolicyFailure by the Manager.
type Policy interface {
	Decide(obs forest.Observation) (int, error)
}
