package router_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/siscec-api/internal/database"
	alerthandler "github.com/jwalitptl/siscec-api/internal/handler/alert"
	authhandler "github.com/jwalitptl/siscec-api/internal/handler/auth"
	dashboardhandler "github.com/jwalitptl/siscec-api/internal/handler/dashboard"
	healthhandler "github.com/jwalitptl/siscec-api/internal/handler/health"
	vitalshandler "github.com/jwalitptl/siscec-api/internal/handler/vitals"
	"github.com/jwalitptl/siscec-api/internal/middleware"
	"github.com/jwalitptl/siscec-api/internal/repository/sqlstore"
	"github.com/jwalitptl/siscec-api/internal/router"
	"github.com/jwalitptl/siscec-api/internal/service/alert"
	"github.com/jwalitptl/siscec-api/internal/service/auth"
	"github.com/jwalitptl/siscec-api/internal/service/dashboard"
	"github.com/jwalitptl/siscec-api/internal/service/health"
	"github.com/jwalitptl/siscec-api/internal/service/vitals"
	"github.com/jwalitptl/siscec-api/pkg/logger"
	"github.com/jwalitptl/siscec-api/pkg/metrics"
	"github.com/jwalitptl/siscec-api/pkg/validator"
)

// TestResponse is a decoded response body.
type TestResponse struct {
	Code int
	Body map[string]interface{}
	Raw  string
}

func (r TestResponse) IsSuccess() bool {
	exito, _ := r.Body["exito"].(bool)
	return exito
}

type testServer struct {
	srv  *httptest.Server
	mock sqlmock.Sqlmock
	m    *metrics.Metrics
}

// newTestServer wires the full graph over sqlmock. A non-nil gw replaces
// the pooled gateway.
func newTestServer(t *testing.T, gw database.Gateway) *testServer {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.Nop()
	m := metrics.New("test")

	if gw == nil {
		gw = database.NewPoolGateway(sqlx.NewDb(db, "postgres"), log, m)
	}
	base := sqlstore.NewBaseRepository(gw, log)

	r := router.NewRouter(log, router.RouterConfig{
		CORSConfig:  middleware.DefaultCORSConfig(),
		Metrics:     m,
		MetricsPath: "/metrics",
	},
		healthhandler.NewHandler(health.NewService(sqlstore.NewHealthRepository(base)), "PostgreSQL 16", log),
		authhandler.NewHandler(auth.NewService(sqlstore.NewUserRepository(base), log)),
		vitalshandler.NewHandler(vitals.NewService(sqlstore.NewVitalSignsRepository(base), validator.New(), log)),
		alerthandler.NewHandler(alert.NewService(sqlstore.NewAlertRepository(base), log), m),
		dashboardhandler.NewHandler(dashboard.NewService(sqlstore.NewDashboardRepository(base), log), m),
	)
	r.Setup()

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)

	return &testServer{srv: srv, mock: mock, m: m}
}

func (s *testServer) makeRequest(t *testing.T, method, path string, body interface{}) TestResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := TestResponse{Code: resp.StatusCode, Raw: string(raw)}
	_ = json.Unmarshal(raw, &out.Body)
	return out
}

func TestPatientFlow(t *testing.T) {
	s := newTestServer(t, nil)

	s.mock.ExpectQuery(`^SELECT 'OK'$`).WillReturnRows(sqlmock.NewRows([]string{"ok"}).AddRow("OK"))
	health := s.makeRequest(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "OK", health.Body["status"])
	assert.Equal(t, "PostgreSQL 16", health.Body["database"])

	s.mock.ExpectQuery(`FROM Usuario_Sistema u`).
		WithArgs("ana", "secret").
		WillReturnRows(sqlmock.NewRows([]string{"id_usuario", "username", "rol", "id_paciente", "nombres", "apellidos"}).
			AddRow(int64(1), "ana", "paciente", int64(42), "Ana", "Pérez"))
	login := s.makeRequest(t, http.MethodPost, "/login", map[string]interface{}{
		"username": "ana",
		"password": "secret",
	})
	require.True(t, login.IsSuccess(), login.Raw)
	usuario := login.Body["usuario"].(map[string]interface{})
	assert.EqualValues(t, 42, usuario["id_paciente"])

	s.mock.ExpectExec(`^CALL SP_Registrar_Signos\(\$1, \$2, \$3, \$4, \$5\)$`).
		WithArgs(int64(42), "150/95", 250.0, int64(110), 38.5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	signos := s.makeRequest(t, http.MethodPost, "/signos/42", map[string]interface{}{
		"presion":     "150/95",
		"glucosa":     "250",
		"frecuencia":  110,
		"temperatura": 38.5,
	})
	require.True(t, signos.IsSuccess(), signos.Raw)
	assert.Equal(t, true, signos.Body["alertas_generadas"])

	emitted := time.Date(2024, 6, 1, 8, 15, 0, 0, time.UTC)
	s.mock.ExpectQuery(`FROM Alerta`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id_alerta", "tipo", "mensaje", "fecha_emision", "estado"}).
			AddRow(int64(3), "GLUCOSA", "Glucosa elevada", emitted, "ACTIVA").
			AddRow(int64(2), "FIEBRE", "Temperatura alta", emitted, "ACTIVA"))
	alertas := s.makeRequest(t, http.MethodGet, "/alertas/42", nil)
	assert.Equal(t, http.StatusOK, alertas.Code)
	assert.Len(t, alertas.Body["alertas"], 2)

	s.mock.ExpectQuery(`FN_Contar_Alertas`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(int64(2)))
	s.mock.ExpectQuery(`FROM Signos_vitales`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"fecha"}).AddRow(emitted))
	dash := s.makeRequest(t, http.MethodGet, "/dashboard/42", nil)
	assert.JSONEq(t, `{"dashboard":{"alertas_activas":2,"ultimo_signos":{"fecha":"2024-06-01T08:15:00"},"proxima_cita":null}}`, dash.Raw)

	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestInvalidVitalsNeverReachDatabase(t *testing.T) {
	cases := []struct {
		name  string
		body  map[string]interface{}
		campo string
	}{
		{"glucosa", map[string]interface{}{"glucosa": "abc", "frecuencia": "72", "temperatura": "36.6"}, "glucosa"},
		{"frecuencia", map[string]interface{}{"glucosa": "110", "frecuencia": "abc", "temperatura": "36.6"}, "frecuencia"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, nil)

			resp := s.makeRequest(t, http.MethodPost, "/signos/42", tc.body)
			assert.Equal(t, http.StatusInternalServerError, resp.Code)
			assert.False(t, resp.IsSuccess())

			errores, ok := resp.Body["errores"].([]interface{})
			require.True(t, ok, resp.Raw)
			require.Len(t, errores, 1)
			assert.Equal(t, tc.campo, errores[0].(map[string]interface{})["campo"])
			assert.NoError(t, s.mock.ExpectationsWereMet())
		})
	}
}

func TestDegradedEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	s.mock.ExpectQuery(`FROM Alerta`).WillReturnError(errors.New("relation does not exist"))
	alertas := s.makeRequest(t, http.MethodGet, "/alertas/1", nil)
	assert.Equal(t, http.StatusOK, alertas.Code)
	assert.JSONEq(t, `{"alertas":[]}`, alertas.Raw)

	s.mock.ExpectQuery(`FN_Contar_Alertas`).WillReturnError(errors.New("function does not exist"))
	dash := s.makeRequest(t, http.MethodGet, "/dashboard/1", nil)
	assert.Equal(t, http.StatusOK, dash.Code)
	assert.JSONEq(t, `{"dashboard":null}`, dash.Raw)

	metricsResp := s.makeRequest(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, metricsResp.Code)
	assert.Contains(t, metricsResp.Raw, `test_degraded_responses_total{endpoint="alertas"} 1`)
	assert.Contains(t, metricsResp.Raw, `test_degraded_responses_total{endpoint="dashboard"} 1`)
}

func TestDatabaseDown(t *testing.T) {
	s := newTestServer(t, database.NewDirectGateway("unregistered", "", logger.Nop(), nil))

	health := s.makeRequest(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusInternalServerError, health.Code)
	assert.JSONEq(t, `{"status":"ERROR","conexion":"No disponible","docker":"Verificar contenedor"}`, health.Raw)

	login := s.makeRequest(t, http.MethodPost, "/login", map[string]interface{}{"username": "a", "password": "b"})
	assert.Equal(t, http.StatusInternalServerError, login.Code)
	assert.Equal(t, "Error de conexión a base de datos", login.Body["mensaje"])

	signos := s.makeRequest(t, http.MethodPost, "/signos/1", map[string]interface{}{
		"glucosa": 1, "frecuencia": 1, "temperatura": 1,
	})
	assert.Equal(t, http.StatusInternalServerError, signos.Code)
	assert.Equal(t, "Error de conexión a base de datos", signos.Body["mensaje"])

	alertas := s.makeRequest(t, http.MethodGet, "/alertas/1", nil)
	assert.JSONEq(t, `{"alertas":[]}`, alertas.Raw)

	dash := s.makeRequest(t, http.MethodGet, "/dashboard/1", nil)
	assert.JSONEq(t, `{"dashboard":null}`, dash.Raw)
}

func TestUnknownRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/nope", "/alertas/abc", "/dashboard/1.5"} {
		resp := s.makeRequest(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, resp.Code, path)
	}
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t, nil)
	s.mock.ExpectQuery(`^SELECT 'OK'$`).WillReturnRows(sqlmock.NewRows([]string{"ok"}).AddRow("OK"))

	req, err := http.NewRequest(http.MethodGet, s.srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:8080")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderXRequestID))
}
