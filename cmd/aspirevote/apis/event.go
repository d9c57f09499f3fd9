package apis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"aspirevote-backend/cmd/aspirevote/model"
	"aspirevote-backend/cmd/aspirevote/phase"
	"aspirevote-backend/cmd/aspirevote/repository"

	"github.com/gocarina/gocsv"
	"github.com/goforj/godump"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type IEventRepo interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (model.Event, error)
	CreateEvent(ctx context.Context, event model.Event) (model.Event, error)
	CreateEvents(ctx context.Context, events []model.Event) ([]model.Event, error)
}

type EventAPI struct {
	eventRepo IEventRepo
	now       func() time.Time
	debug     bool
}

func NewEventAPI(eventRepo IEventRepo) *EventAPI {
	return &EventAPI{
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for phase routing.
func (a *EventAPI) WithClock(now func() time.Time) *EventAPI {
	a.now = now
	return a
}

// WithDebug dumps parsed import rows to stdout.
func (a *EventAPI) WithDebug(debug bool) *EventAPI {
	a.debug = debug
	return a
}

func (a *EventAPI) Setup(g *echo.Group) {
	g.GET("/events", a.listEvents)
	g.GET("/events/:id", a.getEvent)
	g.GET("/events/:id/destination", a.eventDestination)
	g.POST("/events", a.createEvent, RequireAdmin)
	g.POST("/events/import", a.importEvents, RequireAdmin)
}

// listEvents answers with a bare JSON array in store order, the shape the
// directory client consumes.
func (a *EventAPI) listEvents(c echo.Context) error {
	ctx := c.Request().Context()

	events, err := a.eventRepo.ListEvents(ctx)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}
	if events == nil {
		events = []model.Event{}
	}

	return c.JSON(http.StatusOK, events)
}

func (a *EventAPI) getEvent(c echo.Context) error {
	event, err := a.eventRepo.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    event,
		},
	)
}

func (a *EventAPI) eventDestination(c echo.Context) error {
	event, err := a.eventRepo.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}

	now := a.now()
	session := SessionFrom(c)
	dest, err := phase.Route(event, now, session.Role)
	if errors.Is(err, phase.ErrEventNotActive) {
		return c.JSON(
			http.StatusConflict,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data: model.DestinationResponse{
				View:  string(dest.View),
				Path:  dest.Path(),
				Phase: string(phase.Current(event, now)),
			},
		},
	)
}

func (a *EventAPI) createEvent(c echo.Context) error {
	ctx := c.Request().Context()

	var req model.EventCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	event, err := req.ToEvent()
	if err == nil {
		err = event.Validate()
	}
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	event, err = a.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	log.Info().Str("event_id", event.ID).Str("name", event.Name).Msg("event created")
	return c.JSON(
		http.StatusCreated,
		model.BaseResponse{
			Message: "success",
			Data:    event,
		},
	)
}

// importEvents creates every row of an uploaded CSV sheet or none of them.
func (a *EventAPI) importEvents(c echo.Context) error {
	ctx := c.Request().Context()

	csvfile, err := c.FormFile("csvfile")
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	cf, err := csvfile.Open()
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}
	defer cf.Close()

	var rows []*model.EventCSV
	if err := gocsv.Unmarshal(cf, &rows); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if a.debug {
		godump.Dump(rows)
	}

	if len(rows) == 0 {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: "csv contains no events",
			},
		)
	}

	events := make([]model.Event, 0, len(rows))
	for i, row := range rows {
		event, err := row.ToEvent()
		if err == nil {
			err = event.Validate()
		}
		if err != nil {
			return c.JSON(
				http.StatusBadRequest,
				model.BaseResponse{
					// header is line 1
					Message: fmt.Sprintf("line %d: %v", i+2, err),
				},
			)
		}
		events = append(events, event)
	}

	created, err := a.eventRepo.CreateEvents(ctx, events)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	ids := make([]string, 0, len(created))
	for _, event := range created {
		ids = append(ids, event.ID)
	}

	log.Info().Int("count", len(ids)).Str("file", csvfile.Filename).Msg("events imported")
	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data: model.ImportResponse{
				Imported: len(ids),
				IDs:      ids,
			},
		},
	)
}

func storeError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrEventNotFound) {
		return c.JSON(
			http.StatusNotFound,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}
	return c.JSON(
		http.StatusInternalServerError,
		model.BaseResponse{
			Message: err.Error(),
		},
	)
}
