package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-ob/internal/api"
	"hotel-ob/internal/datastore"
	"hotel-ob/internal/metrics"
	"hotel-ob/internal/orchestration"
	"hotel-ob/internal/wizard"
)

const backendURL = "http://backend.test"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	client := api.NewClient(backendURL)
	gock.InterceptClient(client.HTTPClient())
	t.Cleanup(func() {
		gock.RestoreClient(client.HTTPClient())
		gock.Off()
	})

	recorder := metrics.NewRecorder()
	cfg := orchestration.DefaultOrchestratorConfig()
	cfg.Observer = recorder
	orch := orchestration.NewOrchestrator(datastore.NewMemory(), client, cfg)
	return New(orch, WithMetrics(recorder.Handler()))
}

func do(t *testing.T, s *Server, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func startSession(t *testing.T, s *Server) string {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/sessions", "", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[orchestration.SessionStatus](t, w).SessionID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSubmitHotelAndRoomInfo(t *testing.T) {
	s := newTestServer(t)
	id := startSession(t, s)

	gock.New(backendURL).Post("/hotels").Reply(201).JSON(map[string]any{"hotelId": 42})
	gock.New(backendURL).Post("/files/assign-temporary").Reply(200).JSON(map[string]any{"updatedCount": 1})

	w := do(t, s, http.MethodPost, "/api/sessions/"+id+"/steps/hotel", "application/json", `{"name":"Seeblick"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[wizard.Outcome](t, w)
	assert.True(t, out.Success)
	assert.Equal(t, wizard.StepRoomInfo, out.Active)
	assert.Equal(t, int64(42), out.HotelID)

	gock.New(backendURL).Post("/rooms").Reply(200).JSON(map[string]any{"data": map[string]any{"roomId": 7}})

	yamlBody := "mainContactNameRoom: Jane\nbreakfastIncluded: true\n"
	w = do(t, s, http.MethodPost, "/api/sessions/"+id+"/steps/roomInfo", "application/x-yaml", yamlBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, gock.IsDone())

	w = do(t, s, http.MethodGet, "/api/sessions/"+id, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[orchestration.SessionStatus](t, w)
	assert.Equal(t, 2, status.Done)
	assert.Equal(t, wizard.StepRoomCategories, status.ActiveStep)

	w = do(t, s, http.MethodGet, "/metrics", "", "")
	assert.Contains(t, w.Body.String(), `hotelob_wizard_step_dispatches_total{outcome="success",step="hotel"} 1`)
}

func TestSubmitErrorsMapToStatus(t *testing.T) {
	s := newTestServer(t)
	id := startSession(t, s)

	w := do(t, s, http.MethodPost, "/api/sessions/"+id+"/steps/roomInfo", "application/json", `{}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode[map[string]any](t, w)
	assert.Contains(t, body["error"], "hotel")
	assert.NotNil(t, body["outcome"])

	gock.New(backendURL).Post("/hotels").Reply(422).JSON(map[string]any{"error": "name taken"})
	w = do(t, s, http.MethodPost, "/api/sessions/"+id+"/steps/hotel", "application/json", `{"name":"Seeblick"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = do(t, s, http.MethodPost, "/api/sessions/"+id+"/steps/spa", "application/json", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/sessions/"+id+"/steps/hotel", "application/json", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/sessions/"+id+"/steps/hotel", "application/yaml", "name: [")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/sessions/nope/steps/hotel", "application/json", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNavigationAndLiveData(t *testing.T) {
	s := newTestServer(t)
	id := startSession(t, s)

	w := do(t, s, http.MethodPost, "/api/sessions/"+id+"/jump", "application/json", `{"step":"foodBeverage"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, wizard.StepFoodBeverage, decode[orchestration.SessionStatus](t, w).ActiveStep)

	w = do(t, s, http.MethodPost, "/api/sessions/"+id+"/back", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wizard.StepEventSpaces, decode[orchestration.SessionStatus](t, w).ActiveStep)

	w = do(t, s, http.MethodPut, "/api/sessions/"+id+"/steps/hotel/live", "application/json", `{"name":"Draft"}`)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/sessions/"+id+"/steps/hotel", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode[map[string]any](t, w)
	assert.Equal(t, "Draft", data["live"].(map[string]any)["name"])
	assert.Equal(t, "", data["committed"].(map[string]any)["name"])
	assert.Equal(t, false, data["complete"])

	w = do(t, s, http.MethodGet, "/api/sessions/"+id+"/steps/hotel/plan", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"step":"hotel","calls":["createHotel"]}`, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/sessions/"+id+"/jump", "application/json", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartEditSession(t *testing.T) {
	s := newTestServer(t)

	gock.New(backendURL).Get("/hotels/42/full").Reply(200).JSON(map[string]any{
		"hotel": map[string]any{"id": 42, "name": "Seeblick"},
		"rooms": map[string]any{"room": map[string]any{"id": 7}, "categories": []any{}},
	})
	gock.New(backendURL).Get("/hotels/43/full").Reply(404).JSON(map[string]any{"error": "hotel not found"})

	w := do(t, s, http.MethodPost, "/api/sessions", "application/json", `{"mode":"edit","hotelId":42}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	status := decode[orchestration.SessionStatus](t, w)
	assert.Equal(t, wizard.ModeEdit, status.Mode)
	assert.Equal(t, int64(7), status.IDs.RoomConfigID)
	assert.Equal(t, 2, status.Done)

	w = do(t, s, http.MethodPost, "/api/sessions", "application/json", `{"mode":"edit","hotelId":43}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPost, "/api/sessions", "application/json", `{"mode":"edit"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/sessions", "application/json", `{"mode":"copy"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAndDelete(t *testing.T) {
	s := newTestServer(t)
	id := startSession(t, s)

	w := do(t, s, http.MethodGet, "/api/sessions", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`"id":%q`, id))

	w = do(t, s, http.MethodDelete, "/api/sessions/"+id, "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodDelete, "/api/sessions/"+id, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{wizard.ErrSessionNotFound, http.StatusNotFound},
		{&wizard.PreconditionError{Step: wizard.StepRoomInfo, Missing: "hotel"}, http.StatusConflict},
		{wizard.ErrDispatchInFlight, http.StatusConflict},
		{&wizard.StepError{Step: wizard.StepHotel, Call: "createHotel", Err: errors.New("boom")}, http.StatusBadGateway},
		{&api.Error{StatusCode: 500, Message: "down"}, http.StatusBadGateway},
		{fmt.Errorf("loading hotel 1: %w", &api.Error{StatusCode: 404}), http.StatusNotFound},
		{orchestration.ErrHotelIDRequired, http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
