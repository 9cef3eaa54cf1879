package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/cinehall/cinehall/internal/domain"
	"github.com/cinehall/cinehall/internal/mocks"
	"github.com/cinehall/cinehall/internal/seating"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SeatsTestSuite struct {
	suite.Suite
	app         *Application
	seatRepo    *mocks.MockSeatRepo
	hallRepo    *mocks.MockHallRepo
	redisClient *mocks.MockRedisClient
}

func (s *SeatsTestSuite) SetupTest() {
	s.seatRepo = new(mocks.MockSeatRepo)
	s.hallRepo = new(mocks.MockHallRepo)
	s.redisClient = new(mocks.MockRedisClient)

	s.app = newTestApplication(func(a *Application) {
		a.hallRepo = s.hallRepo
		a.seating = seating.New(s.seatRepo, s.hallRepo)
		a.redis = s.redisClient
	})
}

func TestSeatsSuite(t *testing.T) {
	suite.Run(t, new(SeatsTestSuite))
}

func (s *SeatsTestSuite) cacheMiss(hallId int) {
	s.redisClient.On("Get", mock.Anything, seatMapKey(hallId)).
		Return(redis.NewStringResult("", redis.Nil))
}

func (s *SeatsTestSuite) TestGetHallSeats() {
	hallId := 5

	s.Run("should fail when hall does not exist", func() {
		s.SetupTest()

		s.cacheMiss(hallId)
		s.hallRepo.On("Exists", mock.Anything, hallId).Return(false, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/halls/5/seats", nil)
		s.app.GetHallSeats(w, withURLParam(r, "hallId", "5"))

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("should return grouped seat map and cache it", func() {
		s.SetupTest()

		s.cacheMiss(hallId)
		s.hallRepo.On("Exists", mock.Anything, hallId).Return(true, nil)
		s.seatRepo.On("GetByHall", mock.Anything, hallId).Return([]domain.Seat{
			{ID: 1, HallID: hallId, RowNumber: 1, SeatNumber: 1, Category: domain.SeatStandard},
			{ID: 2, HallID: hallId, RowNumber: 1, SeatNumber: 2, Category: domain.SeatVIP},
			{ID: 3, HallID: hallId, RowNumber: 2, SeatNumber: 1, Category: domain.SeatAccessible},
		}, nil)
		s.redisClient.On("Set", mock.Anything, seatMapKey(hallId), mock.Anything, seatMapTTL).
			Return(redis.NewStatusResult("OK", nil))

		w, r := executeRequest(s.T(), http.MethodGet, "/halls/5/seats", nil)
		s.app.GetHallSeats(w, withURLParam(r, "hallId", "5"))

		s.Require().Equal(http.StatusOK, w.Code)

		var resp SeatMapResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

		want := SeatMapResponse{
			HallId: hallId,
			SeatRows: []SeatRow{
				{
					Row: 1,
					Seats: []SeatResponse{
						{Id: 1, RowNumber: 1, SeatNumber: 1, Category: "standard"},
						{Id: 2, RowNumber: 1, SeatNumber: 2, Category: "vip"},
					},
				},
				{
					Row: 2,
					Seats: []SeatResponse{
						{Id: 3, RowNumber: 2, SeatNumber: 1, Category: "accessible"},
					},
				},
			},
		}

		diff := cmp.Diff(want, resp)
		s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
		s.redisClient.AssertExpectations(s.T())
	})

	s.Run("should render an empty seat row array for a seatless hall", func() {
		s.SetupTest()

		s.cacheMiss(hallId)
		s.hallRepo.On("Exists", mock.Anything, hallId).Return(true, nil)
		s.seatRepo.On("GetByHall", mock.Anything, hallId).Return([]domain.Seat{}, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/halls/5/seats", nil)
		s.app.GetHallSeats(w, withURLParam(r, "hallId", "5"))

		s.Require().Equal(http.StatusOK, w.Code)
		s.JSONEq(`{"hallId":5,"seatRows":[]}`, w.Body.String())
		s.redisClient.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("should serve the cached payload without touching the database", func() {
		s.SetupTest()

		cached := `{"hallId":5,"seatRows":[]}`
		s.redisClient.On("Get", mock.Anything, seatMapKey(hallId)).
			Return(redis.NewStringResult(cached, nil))

		w, r := executeRequest(s.T(), http.MethodGet, "/halls/5/seats", nil)
		s.app.GetHallSeats(w, withURLParam(r, "hallId", "5"))

		s.Equal(http.StatusOK, w.Code)
		s.JSONEq(cached, w.Body.String())
		s.hallRepo.AssertNotCalled(s.T(), "Exists", mock.Anything, mock.Anything)
		s.seatRepo.AssertNotCalled(s.T(), "GetByHall", mock.Anything, mock.Anything)
	})

	s.Run("should fall through to the database when the cache read fails", func() {
		s.SetupTest()

		s.redisClient.On("Get", mock.Anything, seatMapKey(hallId)).
			Return(redis.NewStringResult("", fmt.Errorf("redis error")))
		s.hallRepo.On("Exists", mock.Anything, hallId).Return(true, nil)
		s.seatRepo.On("GetByHall", mock.Anything, hallId).Return([]domain.Seat{}, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/halls/5/seats", nil)
		s.app.GetHallSeats(w, withURLParam(r, "hallId", "5"))

		s.Equal(http.StatusOK, w.Code)
	})
}

func (s *SeatsTestSuite) TestGenerateHallSeats() {
	hallId := 5

	validRequest := GenerateSeatsRequest{
		Rows: []RowConfigRequest{
			{RowNumber: 1, SeatsCount: 2},
		},
	}

	s.Run("should fail when a row config is invalid", func() {
		s.SetupTest()

		req := GenerateSeatsRequest{
			Rows: []RowConfigRequest{{RowNumber: 1, SeatsCount: -1}},
		}

		w, r := executeRequest(s.T(), http.MethodPut, "/halls/5/seats", req)
		s.app.GenerateHallSeats(w, withURLParam(r, "hallId", "5"))

		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("should fail when hall has bookings", func() {
		s.SetupTest()

		s.hallRepo.On("Exists", mock.Anything, hallId).Return(true, nil)
		s.hallRepo.On("HasAnyBookings", mock.Anything, hallId).Return(true, nil)

		w, r := executeRequest(s.T(), http.MethodPut, "/halls/5/seats", validRequest)
		s.app.GenerateHallSeats(w, withURLParam(r, "hallId", "5"))

		s.Equal(http.StatusConflict, w.Code)

		checkErrorResponse(s.T(), w, struct {
			wantStatus     int
			wantErrMessage string
		}{
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrSeatsLockedByBookings.Message,
		})
	})

	s.Run("should generate seats and invalidate the cached seat map", func() {
		s.SetupTest()

		s.hallRepo.On("Exists", mock.Anything, hallId).Return(true, nil)
		s.hallRepo.On("HasAnyBookings", mock.Anything, hallId).Return(false, nil)
		s.hallRepo.On("HasAnySessions", mock.Anything, hallId).Return(false, nil)
		s.seatRepo.On("AnyForHall", mock.Anything, hallId).Return(false, nil)
		s.seatRepo.On("ReplaceForHall", mock.Anything, hallId, mock.Anything).Return(nil)
		s.seatRepo.On("GetByHall", mock.Anything, hallId).Return([]domain.Seat{
			{ID: 1, HallID: hallId, RowNumber: 1, SeatNumber: 1, Category: domain.SeatStandard},
			{ID: 2, HallID: hallId, RowNumber: 1, SeatNumber: 2, Category: domain.SeatStandard},
		}, nil)
		s.redisClient.On("Del", mock.Anything, []string{seatMapKey(hallId)}).
			Return(redis.NewIntResult(1, nil))

		w, r := executeRequest(s.T(), http.MethodPut, "/halls/5/seats", validRequest)
		s.app.GenerateHallSeats(w, withURLParam(r, "hallId", "5"))

		s.Require().Equal(http.StatusOK, w.Code)

		var resp SeatMapResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Len(resp.SeatRows, 1)
		s.Len(resp.SeatRows[0].Seats, 2)
		s.redisClient.AssertExpectations(s.T())
	})
}

func (s *SeatsTestSuite) TestGetSeatingPlan() {
	hallId := 5

	s.Run("should fail when hall does not exist", func() {
		s.SetupTest()

		s.hallRepo.On("GetById", mock.Anything, hallId).Return(nil, domain.ErrRecordNotFound)

		w, r := executeRequest(s.T(), http.MethodGet, "/halls/5/seating", nil)
		s.app.GetSeatingPlan(w, withURLParam(r, "hallId", "5"))

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("should propose a grid for an editable hall", func() {
		s.SetupTest()

		s.hallRepo.On("GetById", mock.Anything, hallId).Return(&domain.Hall{ID: hallId, Name: "Hall A"}, nil)
		s.seatRepo.On("AnyForHall", mock.Anything, hallId).Return(false, nil)
		s.hallRepo.On("HasAnyBookings", mock.Anything, hallId).Return(false, nil)
		s.hallRepo.On("HasAnySessions", mock.Anything, hallId).Return(false, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/halls/5/seating?rows=3&seatsPerRow=4", nil)
		s.app.GetSeatingPlan(w, withURLParam(r, "hallId", "5"))

		s.Require().Equal(http.StatusOK, w.Code)

		var resp SeatingPlanResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

		s.Equal("Hall A", resp.HallName)
		s.True(resp.CanEdit)
		s.Equal(3, resp.Rows)
		s.Equal(4, resp.SeatsPerRow)
		s.Len(resp.RowConfigs, 3)
	})
}
