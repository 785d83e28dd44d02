package chatbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getOpenSlots "github.com/agendamed/scheduling-service/internal/usecase/get_open_slots"
)

type mockSlotsUseCase struct {
	ExecuteFunc func(ctx context.Context, req *getOpenSlots.Request) (*getOpenSlots.Response, error)
}

func (m *mockSlotsUseCase) Execute(ctx context.Context, req *getOpenSlots.Request) (*getOpenSlots.Response, error) {
	return m.ExecuteFunc(ctx, req)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

var (
	_ GetOpenSlotsUseCase = (*mockSlotsUseCase)(nil)
	_ Logger              = (noopLogger{})
)

func newDatesHandler(slots GetOpenSlotsUseCase) *Handler {
	return NewHandler(nil, nil, nil, slots, nil, noopLogger{})
}

func slotAt(year int, month time.Month, day, hour int) getOpenSlots.Slot {
	return getOpenSlots.Slot{
		Start:           time.Date(year, month, day, hour, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}
}

func TestDates_BuildsDateMenu(t *testing.T) {
	slots := &mockSlotsUseCase{
		ExecuteFunc: func(ctx context.Context, req *getOpenSlots.Request) (*getOpenSlots.Response, error) {
			require.NotNil(t, req.DoctorID)
			assert.Equal(t, int64(7), *req.DoctorID)
			assert.Nil(t, req.From)
			assert.Nil(t, req.To)

			return &getOpenSlots.Response{
				Doctors: []getOpenSlots.DoctorSlots{{
					DoctorID:   7,
					DoctorName: "Dra. Helena Souza",
					Slots: []getOpenSlots.Slot{
						slotAt(2024, 12, 20, 9),
						slotAt(2024, 12, 20, 10),
						slotAt(2024, 12, 19, 14),
					},
				}},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chatbot/dates?doctor_id=7", nil)
	rec := httptest.NewRecorder()

	newDatesHandler(slots).Dates(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DateMenuResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Len(t, resp.Items, 2)
	assert.Equal(t, DateItem{Number: 1, Date: "2024-12-19", Label: "19/12/2024"}, resp.Items[0])
	assert.Equal(t, DateItem{Number: 2, Date: "2024-12-20", Label: "20/12/2024"}, resp.Items[1])
	assert.Equal(t, "Escolha a data:\n1. 19/12/2024\n2. 20/12/2024", resp.Message)
}

func TestDates_NoOpenDates(t *testing.T) {
	slots := &mockSlotsUseCase{
		ExecuteFunc: func(ctx context.Context, req *getOpenSlots.Request) (*getOpenSlots.Response, error) {
			return &getOpenSlots.Response{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chatbot/dates?doctor_id=7", nil)
	rec := httptest.NewRecorder()

	newDatesHandler(slots).Dates(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DateMenuResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Empty(t, resp.Items)
	assert.Equal(t, msgNoDates, resp.Message)
}

func TestDates_InvalidDoctorID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chatbot/dates?doctor_id=abc", nil)
	rec := httptest.NewRecorder()

	newDatesHandler(&mockSlotsUseCase{}).Dates(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDates_DoctorNotFound(t *testing.T) {
	slots := &mockSlotsUseCase{
		ExecuteFunc: func(ctx context.Context, req *getOpenSlots.Request) (*getOpenSlots.Response, error) {
			return nil, getOpenSlots.ErrDoctorNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chatbot/dates?doctor_id=99", nil)
	rec := httptest.NewRecorder()

	newDatesHandler(slots).Dates(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
