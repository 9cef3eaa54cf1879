package app

import (
	"net/http"
	"strings"

	"github.com/cinehall/cinehall/internal/domain"
)

type HallRequest struct {
	CinemaId int    `json:"cinemaId" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

type HallResponse struct {
	HallId     int    `json:"hallId"`
	HallName   string `json:"hallName"`
	CinemaName string `json:"cinemaName"`
	SeatsCount int    `json:"seatsCount"`
}

type HallListResponse struct {
	Halls []HallResponse `json:"halls"`
}

type CreateHallResponse struct {
	Id int `json:"id"`
}

func (app *Application) ListHalls(w http.ResponseWriter, r *http.Request) {
	cinemaId, err := readOptionalInt(r, "cinemaId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var halls []domain.HallSummary

	if cinemaId != nil {
		halls, err = app.hallRepo.GetByCinema(r.Context(), *cinemaId)
	} else {
		halls, err = app.hallRepo.GetAll(r.Context())
	}
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := HallListResponse{Halls: make([]HallResponse, len(halls))}
	for i, hall := range halls {
		resp.Halls[i] = HallResponse{
			HallId:     hall.HallID,
			HallName:   hall.HallName,
			CinemaName: hall.CinemaName,
			SeatsCount: hall.SeatsCount,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req HallRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	exists, err := app.hallRepo.CinemaExists(r.Context(), req.CinemaId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !exists {
		app.badRequestResponse(w, r, domain.NewValidationError("cinema %d does not exist", req.CinemaId))
		return
	}

	hall := &domain.Hall{CinemaID: req.CinemaId, Name: req.Name}

	err = app.hallRepo.Create(r.Context(), hall)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.logger.Info("hall created", "hall_id", hall.ID, "cinema_id", hall.CinemaID)

	err = app.writeJSON(w, http.StatusCreated, CreateHallResponse{Id: hall.ID}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateHall(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "hallId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req HallRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	hall := &domain.Hall{ID: id, CinemaID: req.CinemaId, Name: req.Name}

	err = app.hallRepo.Update(r.Context(), hall)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) DeleteHall(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "hallId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.hallRepo.Delete(r.Context(), id)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	// The cached seat map outlives the hall otherwise.
	if err := app.redis.Del(r.Context(), seatMapKey(id)).Err(); err != nil {
		app.logger.Warn("seat map cache invalidation failed", "hall_id", id, "error", err)
	}

	app.logger.Info("hall deleted", "hall_id", id)

	w.WriteHeader(http.StatusNoContent)
}
