package models

// Vote records that a principal has voted on a proposal. It exists to
// enforce "at most one vote per (proposal, voter)" and is never updated or
// deleted after creation.
type Vote struct {
	Key    string `json:"key" gorm:"primaryKey;type:varchar(512)"`
	Choice string `json:"choice" gorm:"type:varchar(8)"` // "yes" or "no", lower-cased
}

// VoteKey builds the compound key for a (proposal, voter) pair.
func VoteKey(proposalID, voter string) string {
	return proposalID + "_" + voter
}
