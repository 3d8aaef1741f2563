package models

import "time"

// Comment is a remark attached to a proposal. Content is stored trimmed;
// comments are immutable and never deleted.
type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProposalID string    `json:"proposal_id" gorm:"type:varchar(36)"`
	Content    string    `json:"content" gorm:"type:varchar(1000)" validate:"required"`
	Author     string    `json:"author" gorm:"type:varchar(255)"` // principal of the commenting user
	CreatedAt  time.Time `json:"created_at"`
}
