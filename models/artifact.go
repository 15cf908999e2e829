package models

// ArtifactStatus is the outcome of a single artifact deletion attempt.
type ArtifactStatus string

const (
	ArtifactDeleted  ArtifactStatus = "deleted"
	ArtifactExternal ArtifactStatus = "external"
	ArtifactFailed   ArtifactStatus = "failed"
	// ArtifactSkipped means there was nothing to delete.
	ArtifactSkipped ArtifactStatus = "skipped"
)

// ArtifactOutcome records what happened to one reference.
type ArtifactOutcome struct {
	Ref    string         `json:"ref"`
	Status ArtifactStatus `json:"status"`
	Error  string         `json:"error,omitempty"`
}

// DeletionReport tallies a best-effort batch deletion.
type DeletionReport struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Outcomes  []ArtifactOutcome `json:"outcomes"`
}

// Add records outcome and updates the tally. External references count
// as successes.
func (r *DeletionReport) Add(outcome ArtifactOutcome) {
	if outcome.Status == ArtifactFailed {
		r.Failed++
	} else {
		r.Succeeded++
	}
	r.Outcomes = append(r.Outcomes, outcome)
}
