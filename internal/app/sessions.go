package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cinehall/cinehall/internal/domain"
	"github.com/cinehall/cinehall/internal/scheduler"
	"github.com/shopspring/decimal"
)

type SessionRequest struct {
	MovieId          int             `json:"movieId" validate:"required,gt=0"`
	HallId           int             `json:"hallId" validate:"required,gt=0"`
	StartTime        time.Time       `json:"startTime" validate:"required"`
	EndTime          time.Time       `json:"endTime" validate:"required"`
	PresentationType string          `json:"presentationType" validate:"required,presentation_type"`
	BasePrice        decimal.Decimal `json:"basePrice"`
}

type SessionResponse struct {
	Id               int             `json:"id"`
	MovieId          int             `json:"movieId"`
	HallId           int             `json:"hallId"`
	StartTime        time.Time       `json:"startTime"`
	EndTime          time.Time       `json:"endTime"`
	PresentationType string          `json:"presentationType"`
	BasePrice        decimal.Decimal `json:"basePrice"`
	IsCancelled      bool            `json:"isCancelled"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        *time.Time      `json:"updatedAt,omitempty"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

type CreateSessionResponse struct {
	Id int `json:"id"`
}

func (app *Application) ListSessions(w http.ResponseWriter, r *http.Request) {
	filter, err := toSessionFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sessions, err := app.scheduler.List(r.Context(), filter)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := SessionListResponse{Sessions: toSessionResponses(sessions)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	id, err := app.scheduler.Create(r.Context(), toEditRequest(req))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.logger.Info("session created", "session_id", id, "hall_id", req.HallId, "movie_id", req.MovieId)

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/sessions/%d", id))

	err = app.writeJSON(w, http.StatusCreated, CreateSessionResponse{Id: id}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.scheduler.GetById(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSessionResponse(*session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req SessionRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	session, err := app.scheduler.Update(r.Context(), id, toEditRequest(req))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSessionResponse(*session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.scheduler.Cancel(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.logger.Info("session cancelled", "session_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) RestoreSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.scheduler.Restore(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.logger.Info("session restored", "session_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func toSessionFilter(r *http.Request) (domain.SessionFilter, error) {
	var filter domain.SessionFilter
	var err error

	filter.From, err = readOptionalTime(r, "from")
	if err != nil {
		return filter, err
	}

	filter.To, err = readOptionalTime(r, "to")
	if err != nil {
		return filter, err
	}

	filter.HallID, err = readOptionalInt(r, "hallId")
	if err != nil {
		return filter, err
	}

	filter.MovieID, err = readOptionalInt(r, "movieId")
	if err != nil {
		return filter, err
	}

	filter.IncludeCancelled, err = readOptionalBool(r, "includeCancelled")
	if err != nil {
		return filter, err
	}

	return filter, nil
}

func toEditRequest(req SessionRequest) scheduler.EditRequest {
	return scheduler.EditRequest{
		MovieID:          req.MovieId,
		HallID:           req.HallId,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		PresentationType: domain.PresentationType(req.PresentationType),
		BasePrice:        decimalToNumeric(req.BasePrice),
	}
}

func toSessionResponse(session domain.Session) SessionResponse {
	return SessionResponse{
		Id:               session.ID,
		MovieId:          session.MovieID,
		HallId:           session.HallID,
		StartTime:        session.StartTime,
		EndTime:          session.EndTime,
		PresentationType: string(session.PresentationType),
		BasePrice:        numericToDecimal(session.BasePrice),
		IsCancelled:      session.IsCancelled,
		CreatedAt:        session.CreatedAt,
		UpdatedAt:        session.UpdatedAt,
	}
}

func toSessionResponses(sessions []domain.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = toSessionResponse(session)
	}

	return responses
}
