package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Role string

const (
	RoleAdmin Role = "admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type Event struct {
	ID                   string    `gorm:"column:id;primaryKey" json:"_id"`
	Name                 string    `gorm:"column:name" json:"name" validate:"required"`
	Description          string    `gorm:"column:description" json:"description"`
	Picture              string    `gorm:"column:picture" json:"picture" validate:"omitempty,url"`
	IsActive             bool      `gorm:"column:is_active" json:"isActive"`
	StartNominationPhase time.Time `gorm:"column:start_nomination_phase" json:"startNominationPhase"`
	EndNominationPhase   time.Time `gorm:"column:end_nomination_phase" json:"endNominationPhase" validate:"gtefield=StartNominationPhase"`
	StartVotingPhase     time.Time `gorm:"column:start_voting_phase" json:"startVotingPhase"`
	EndVotingPhase       time.Time `gorm:"column:end_voting_phase" json:"endVotingPhase" validate:"gtefield=StartVotingPhase"`
	ResultPhase          time.Time `gorm:"column:result_phase" json:"resultPhase"`
}

func (m *Event) TableName() string {
	return "events"
}

var validate = validator.New()

// Validate checks the write-side invariants of an event. Records read back from
// a store are never validated.
func (m *Event) Validate() error {
	return validate.Struct(m)
}
