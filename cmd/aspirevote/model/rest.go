package model

import "time"

type BaseResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

type EventCreateRequest struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Picture              string `json:"picture"`
	IsActive             bool   `json:"isActive"`
	StartNominationPhase string `json:"startNominationPhase"`
	EndNominationPhase   string `json:"endNominationPhase"`
	StartVotingPhase     string `json:"startVotingPhase"`
	EndVotingPhase       string `json:"endVotingPhase"`
	ResultPhase          string `json:"resultPhase"`
}

// ToEvent parses the phase timestamps. A bare date closing a window covers that
// whole day. The returned event has no ID.
func (r EventCreateRequest) ToEvent() (Event, error) {
	event := Event{
		Name:        r.Name,
		Description: r.Description,
		Picture:     r.Picture,
		IsActive:    r.IsActive,
	}
	fields := []struct {
		name  string
		value string
		dst   *time.Time
		parse func(string) (time.Time, error)
	}{
		{"startNominationPhase", r.StartNominationPhase, &event.StartNominationPhase, ParseTimestamp},
		{"endNominationPhase", r.EndNominationPhase, &event.EndNominationPhase, ParseEndTimestamp},
		{"startVotingPhase", r.StartVotingPhase, &event.StartVotingPhase, ParseTimestamp},
		{"endVotingPhase", r.EndVotingPhase, &event.EndVotingPhase, ParseEndTimestamp},
		{"resultPhase", r.ResultPhase, &event.ResultPhase, ParseTimestamp},
	}
	for _, f := range fields {
		t, err := f.parse(f.value)
		if err != nil {
			return Event{}, &FieldError{Field: f.name, Err: err}
		}
		*f.dst = t
	}
	return event, nil
}

type DestinationResponse struct {
	View  string `json:"view"`
	Path  string `json:"path"`
	Phase string `json:"phase"`
}

type ImportResponse struct {
	Imported int      `json:"imported"`
	IDs      []string `json:"ids"`
}
