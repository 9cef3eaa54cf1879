package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cinehall/cinehall/internal/domain"
	"github.com/redis/go-redis/v9"
)

const seatMapTTL = time.Hour

func seatMapKey(hallID int) string {
	return fmt.Sprintf("seat_map:%d", hallID)
}

type SeatResponse struct {
	Id         int    `json:"id"`
	RowNumber  int    `json:"rowNumber"`
	SeatNumber int    `json:"seatNumber"`
	Category   string `json:"category"`
}

type SeatRow struct {
	Row   int            `json:"row"`
	Seats []SeatResponse `json:"seats"`
}

type SeatMapResponse struct {
	HallId   int       `json:"hallId"`
	SeatRows []SeatRow `json:"seatRows"`
}

type GenerateSeatsRequest struct {
	Rows            []RowConfigRequest `json:"rows" validate:"dive"`
	AllowRegenerate bool               `json:"allowRegenerate"`
}

type RowConfigRequest struct {
	RowNumber  int `json:"rowNumber" validate:"required,gt=0"`
	SeatsCount int `json:"seatsCount" validate:"required,gt=0"`
}

type SeatingPlanResponse struct {
	HallId           int                `json:"hallId"`
	HallName         string             `json:"hallName"`
	Rows             int                `json:"rows"`
	SeatsPerRow      int                `json:"seatsPerRow"`
	AlreadyGenerated bool               `json:"alreadyGenerated"`
	CanEdit          bool               `json:"canEdit"`
	LockReason       string             `json:"lockReason,omitempty"`
	Seats            []SeatResponse     `json:"seats,omitempty"`
	RowConfigs       []RowConfigRequest `json:"rowConfigs,omitempty"`
}

func (app *Application) GetHallSeats(w http.ResponseWriter, r *http.Request) {
	hallID, err := app.readIDParam(r, "hallId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cached, err := app.redis.Get(r.Context(), seatMapKey(hallID)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		app.logger.Warn("seat map cache read failed", "hall_id", hallID, "error", err)
	}
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}

	exists, err := app.hallRepo.Exists(r.Context(), hallID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !exists {
		app.notFoundResponse(w, r)
		return
	}

	seats, err := app.seating.GetSeats(r.Context(), hallID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := SeatMapResponse{HallId: hallID, SeatRows: toSeatRows(seats)}

	if len(seats) > 0 {
		app.cacheSeatMap(r, hallID, resp)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) cacheSeatMap(r *http.Request, hallID int, resp SeatMapResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		app.logger.Warn("seat map cache marshal failed", "hall_id", hallID, "error", err)
		return
	}

	err = app.redis.Set(r.Context(), seatMapKey(hallID), payload, seatMapTTL).Err()
	if err != nil {
		app.logger.Warn("seat map cache write failed", "hall_id", hallID, "error", err)
	}
}

func (app *Application) GenerateHallSeats(w http.ResponseWriter, r *http.Request) {
	hallID, err := app.readIDParam(r, "hallId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req GenerateSeatsRequest

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

	rows := make([]domain.RowConfig, len(req.Rows))
	for i, row := range req.Rows {
		rows[i] = domain.RowConfig{RowNumber: row.RowNumber, SeatsCount: row.SeatsCount}
	}

	seats, err := app.seating.Generate(r.Context(), hallID, rows, req.AllowRegenerate)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.redis.Del(r.Context(), seatMapKey(hallID)).Err(); err != nil {
		app.logger.Warn("seat map cache invalidation failed", "hall_id", hallID, "error", err)
	}

	app.logger.Info("hall seats generated", "hall_id", hallID, "seats_count", len(seats))

	resp := SeatMapResponse{HallId: hallID, SeatRows: toSeatRows(seats)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSeatingPlan(w http.ResponseWriter, r *http.Request) {
	hallID, err := app.readIDParam(r, "hallId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rows, err := readOptionalInt(r, "rows")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seatsPerRow, err := readOptionalInt(r, "seatsPerRow")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	plan, err := app.seating.Seating(r.Context(), hallID, rows, seatsPerRow)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := SeatingPlanResponse{
		HallId:           plan.HallID,
		HallName:         plan.HallName,
		Rows:             plan.Rows,
		SeatsPerRow:      plan.SeatsPerRow,
		AlreadyGenerated: plan.AlreadyGenerated,
		CanEdit:          plan.CanEdit,
		LockReason:       plan.LockReason,
	}

	for _, seat := range plan.Seats {
		resp.Seats = append(resp.Seats, toSeatResponse(seat))
	}
	for _, row := range plan.RowConfigs {
		resp.RowConfigs = append(resp.RowConfigs, RowConfigRequest{RowNumber: row.RowNumber, SeatsCount: row.SeatsCount})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatResponse(seat domain.Seat) SeatResponse {
	return SeatResponse{
		Id:         seat.ID,
		RowNumber:  seat.RowNumber,
		SeatNumber: seat.SeatNumber,
		Category:   string(seat.Category),
	}
}

func toSeatRows(seats []domain.Seat) []SeatRow {
	// Seats are pre-sorted by row and seat number, so a single pass is enough
	// to group them. A seatless hall renders as an empty array, not null.
	seatRows := make([]SeatRow, 0)

	for _, seat := range seats {
		if len(seatRows) == 0 || seatRows[len(seatRows)-1].Row != seat.RowNumber {
			seatRows = append(seatRows, SeatRow{Row: seat.RowNumber})
		}

		last := len(seatRows) - 1
		seatRows[last].Seats = append(seatRows[last].Seats, toSeatResponse(seat))
	}

	return seatRows
}
