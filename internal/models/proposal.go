package models

import "time"

// ProposalStatus is the lifecycle state of a proposal. The only legal
// transitions are OPEN -> EXECUTED and OPEN -> REJECTED.
type ProposalStatus string

const (
	StatusOpen     ProposalStatus = "OPEN"
	StatusExecuted ProposalStatus = "EXECUTED"
	StatusRejected ProposalStatus = "REJECTED"
)

// Terminal reports whether the status is a closed end state.
func (s ProposalStatus) Terminal() bool {
	return s == StatusExecuted || s == StatusRejected
}

// Proposal is a motion put to a vote. Titles are unique case-insensitively.
// The vote counters only ever increase, and only while the proposal is OPEN.
type Proposal struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string         `json:"title" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Description string         `json:"description" gorm:"type:varchar(500)" validate:"required,min=1,max=500"`
	Creator     string         `json:"creator" gorm:"type:varchar(255)"` // principal of the creating user
	Category    string         `json:"category" gorm:"type:varchar(36)"` // id of an existing category
	YesVotes    uint64         `json:"yes_votes"`
	NoVotes     uint64         `json:"no_votes"`
	CreatedAt   time.Time      `json:"created_at"`
	Status      ProposalStatus `json:"status" gorm:"type:varchar(16)"`
}
