package dashboard

import (
	"github.com/fleetlinehq/fleetline-backend/internal/visits"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// StageRollup is one per-stage bucket of the pipeline. Only stages with at
// least one matching opportunity appear in a snapshot.
type StageRollup struct {
	Stage      enums.PipelineStage `json:"stage"`
	Count      int64               `json:"count"`
	TotalValue decimal.Decimal     `json:"total_value"`
}

// Snapshot is the role-scoped pipeline health view returned to the caller.
type Snapshot struct {
	TotalCompanies       int64             `json:"total_companies"`
	TotalVisitsThisMonth int64             `json:"total_visits_this_month"`
	TotalOpportunities   int64             `json:"total_opportunities"`
	PipelineValue        decimal.Decimal   `json:"pipeline_value"`
	RecentVisits         []visits.VisitDTO `json:"recent_visits"`
	OpportunitiesByStage []StageRollup     `json:"opportunities_by_stage"`
}
