package phase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"aspirevote-backend/cmd/aspirevote/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(value string) time.Time {
	t, err := model.ParseTimestamp(value)
	if err != nil {
		panic(err)
	}
	return t
}

func councilEvent() model.Event {
	return model.Event{
		ID:                   "evt-42",
		Name:                 "Student Council",
		IsActive:             true,
		StartNominationPhase: at("2024-01-01"),
		EndNominationPhase:   at("2024-01-10"),
		StartVotingPhase:     at("2024-01-11"),
		EndVotingPhase:       at("2024-01-20"),
		ResultPhase:          at("2024-01-21"),
	}
}

func TestRoute_ParticipantScenario(t *testing.T) {
	tests := []struct {
		name string
		now  string
		want Destination
	}{
		{"before nomination", "2023-12-31", Destination{View: ViewInactive}},
		{"nomination opens", "2024-01-01", Destination{View: ViewNomination, EventID: "evt-42"}},
		{"during nomination", "2024-01-05", Destination{View: ViewNomination, EventID: "evt-42"}},
		{"nomination closes inclusive", "2024-01-10", Destination{View: ViewNomination, EventID: "evt-42"}},
		{"gap after nomination instant", "2024-01-10T00:00:01", Destination{View: ViewInactive}},
		{"voting opens", "2024-01-11", Destination{View: ViewVoting, EventID: "evt-42"}},
		{"during voting", "2024-01-15", Destination{View: ViewVoting, EventID: "evt-42"}},
		{"voting closes inclusive", "2024-01-20", Destination{View: ViewVoting, EventID: "evt-42"}},
		{"waiting for results", "2024-01-20T12:00:00", Destination{View: ViewInactive}},
		{"results instant", "2024-01-21", Destination{View: ViewResults}},
		{"after results", "2024-01-25", Destination{View: ViewResults}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Route(councilEvent(), at(tt.now), model.Role("user"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoute_DateOnlyScheduleScenario(t *testing.T) {
	event, err := model.EventCreateRequest{
		Name:                 "Student Council",
		IsActive:             true,
		StartNominationPhase: "2024-01-01",
		EndNominationPhase:   "2024-01-10",
		StartVotingPhase:     "2024-01-11",
		EndVotingPhase:       "2024-01-20",
		ResultPhase:          "2024-01-21",
	}.ToEvent()
	require.NoError(t, err)
	event.ID = "evt-42"

	tests := []struct {
		now  string
		role model.Role
		want Destination
	}{
		{"2024-01-05", "user", Destination{View: ViewNomination, EventID: "evt-42"}},
		{"2024-01-15", "user", Destination{View: ViewVoting, EventID: "evt-42"}},
		{"2024-01-25", "user", Destination{View: ViewResults}},
		{"2024-01-10T23:59:59", "user", Destination{View: ViewNomination, EventID: "evt-42"}},
		{"2024-01-05", model.RoleAdmin, Destination{View: ViewAdminEvent, EventID: "evt-42"}},
		{"2024-01-25", model.RoleAdmin, Destination{View: ViewAdminEvent, EventID: "evt-42"}},
	}

	for _, tt := range tests {
		got, err := Route(event, at(tt.now), tt.role)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "now=%s role=%s", tt.now, tt.role)
	}
}

func TestRoute_InclusiveNominationEnd(t *testing.T) {
	event := councilEvent()
	event.EndNominationPhase = at("2024-01-10T23:59:59")

	got, err := Route(event, at("2024-01-10T23:59:59"), model.Role(""))
	require.NoError(t, err)
	assert.Equal(t, ViewNomination, got.View)

	got, err = Route(event, event.EndNominationPhase.Add(time.Nanosecond), model.Role(""))
	require.NoError(t, err)
	assert.Equal(t, ViewInactive, got.View)
}

func TestRoute_AdminIgnoresDatesAndActivity(t *testing.T) {
	event := councilEvent()
	inactive := councilEvent()
	inactive.IsActive = false

	for _, now := range []string{"2020-01-01", "2024-01-05", "2024-01-15", "2030-01-01"} {
		for _, e := range []model.Event{event, inactive} {
			got, err := Route(e, at(now), model.RoleAdmin)
			require.NoError(t, err)
			assert.Equal(t, Destination{View: ViewAdminEvent, EventID: "evt-42"}, got)
			assert.Equal(t, "/admin/events/evt-42", got.Path())
		}
	}
}

func TestRoute_InactiveEventIsExplicitNoOp(t *testing.T) {
	event := councilEvent()
	event.IsActive = false

	for _, now := range []string{"2023-12-31", "2024-01-05", "2024-01-15", "2024-01-25"} {
		got, err := Route(event, at(now), model.Role("user"))
		assert.True(t, errors.Is(err, ErrEventNotActive))
		assert.Equal(t, Destination{}, got)
	}
}

func TestRoute_OverlappingWindowsPreferEarlierPhase(t *testing.T) {
	event := councilEvent()
	event.StartVotingPhase = at("2024-01-05")
	event.ResultPhase = at("2024-01-03")

	got, err := Route(event, at("2024-01-07"), model.Role("user"))
	require.NoError(t, err)
	assert.Equal(t, ViewNomination, got.View)

	got, err = Route(event, at("2024-01-15"), model.Role("user"))
	require.NoError(t, err)
	assert.Equal(t, ViewVoting, got.View, "voting beats a result instant that precedes it")

	got, err = Route(event, at("2024-01-21"), model.Role("user"))
	require.NoError(t, err)
	assert.Equal(t, ViewResults, got.View)
}

func TestRoute_MissingResultInstantWaits(t *testing.T) {
	event := councilEvent()
	event.ResultPhase = time.Time{}

	for _, now := range []string{"2023-12-01", "2024-01-20T12:00:00", "2030-01-01"} {
		got, err := Route(event, at(now), model.Role("user"))
		require.NoError(t, err)
		assert.Equal(t, Destination{View: ViewInactive}, got, "now=%s", now)
		assert.Equal(t, Waiting, Current(event, at(now)))
	}

	got, err := Route(event, at("2024-01-15"), model.Role("user"))
	require.NoError(t, err)
	assert.Equal(t, ViewVoting, got.View)
}

func TestCurrent_ExactlyOnePhase(t *testing.T) {
	event := councilEvent()
	start := at("2023-12-25")
	for i := 0; i < 40*24; i++ {
		now := start.Add(time.Duration(i) * time.Hour)
		p := Current(event, now)
		assert.Contains(t, []Phase{Nomination, Voting, Results, Waiting}, p)
	}
}

func TestDestination_Path(t *testing.T) {
	assert.Equal(t, "/signup", Onboarding.Path())
	assert.Equal(t, "/nomination/abc", Destination{View: ViewNomination, EventID: "abc"}.Path())
	assert.Equal(t, "/voting/abc", Destination{View: ViewVoting, EventID: "abc"}.Path())
	assert.Equal(t, "/results", Destination{View: ViewResults}.Path())
	assert.Equal(t, "/inactive", Destination{View: ViewInactive}.Path())
}

func TestRoute_ConcurrentCallers(t *testing.T) {
	event := councilEvent()
	now := at("2024-01-15")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Route(event, now, model.Role("user"))
			assert.NoError(t, err)
			assert.Equal(t, ViewVoting, got.View)
		}()
	}
	wg.Wait()
}
