package model

import (
	"strconv"
	"strings"
)

// EventCSV is one row of an admin event import sheet.
type EventCSV struct {
	Name                 string `csv:"name"`
	Description          string `csv:"description"`
	Picture              string `csv:"picture"`
	IsActive             string `csv:"is_active"`
	StartNominationPhase string `csv:"start_nomination_phase"`
	EndNominationPhase   string `csv:"end_nomination_phase"`
	StartVotingPhase     string `csv:"start_voting_phase"`
	EndVotingPhase       string `csv:"end_voting_phase"`
	ResultPhase          string `csv:"result_phase"`
}

func (r EventCSV) ToEvent() (Event, error) {
	active := false
	if v := strings.TrimSpace(r.IsActive); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Event{}, &FieldError{Field: "is_active", Err: err}
		}
		active = b
	}
	return EventCreateRequest{
		Name:                 r.Name,
		Description:          r.Description,
		Picture:              r.Picture,
		IsActive:             active,
		StartNominationPhase: r.StartNominationPhase,
		EndNominationPhase:   r.EndNominationPhase,
		StartVotingPhase:     r.StartVotingPhase,
		EndVotingPhase:       r.EndVotingPhase,
		ResultPhase:          r.ResultPhase,
	}.ToEvent()
}
