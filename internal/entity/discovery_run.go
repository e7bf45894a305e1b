package entity

import (
	"database/sql"
	"time"
)

// DiscoveryRunStatus is the lifecycle state of a pipeline execution.
type DiscoveryRunStatus string

const (
	RunStatusRunning   DiscoveryRunStatus = "RUNNING"
	RunStatusCompleted DiscoveryRunStatus = "COMPLETED"
	RunStatusNoResult  DiscoveryRunStatus = "NO_RESULT"
	RunStatusFailed    DiscoveryRunStatus = "FAILED"
)

// DiscoveryRun records the operational outcome of one pipeline execution.
// It holds run telemetry only, not historical token metric data.
type DiscoveryRun struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	Status          DiscoveryRunStatus `gorm:"not null" json:"status"`
	StartedAt       time.Time          `gorm:"not null" json:"started_at"`
	CompletedAt     sql.NullTime       `json:"completed_at"`
	CandidatesSeen  int                `json:"candidates_seen"`
	CandidatesValid int                `json:"candidates_valid"`
	SelectedChainID sql.NullString     `json:"selected_chain_id"`
	SelectedAddress sql.NullString     `json:"selected_address"`
	ErrorMessage    sql.NullString     `json:"error_message"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the gorm table name.
func (DiscoveryRun) TableName() string {
	return "discovery_runs"
}
