package enums

import "fmt"

// PipelineStage tracks where an opportunity sits in the sales pipeline.
type PipelineStage string

const (
	PipelineStageLead        PipelineStage = "LEAD"
	PipelineStageQualified   PipelineStage = "QUALIFIED"
	PipelineStageProposal    PipelineStage = "PROPOSAL"
	PipelineStageNegotiation PipelineStage = "NEGOTIATION"
	PipelineStageClosedWon   PipelineStage = "CLOSED_WON"
	PipelineStageClosedLost  PipelineStage = "CLOSED_LOST"
)

var validPipelineStages = []PipelineStage{
	PipelineStageLead,
	PipelineStageQualified,
	PipelineStageProposal,
	PipelineStageNegotiation,
	PipelineStageClosedWon,
	PipelineStageClosedLost,
}

// String implements fmt.Stringer.
func (p PipelineStage) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PipelineStage.
func (p PipelineStage) IsValid() bool {
	for _, candidate := range validPipelineStages {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the stage closes the opportunity.
func (p PipelineStage) IsTerminal() bool {
	return p == PipelineStageClosedWon || p == PipelineStageClosedLost
}

// ParsePipelineStage converts raw input into a PipelineStage.
func ParsePipelineStage(value string) (PipelineStage, error) {
	for _, candidate := range validPipelineStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pipeline stage %q", value)
}
