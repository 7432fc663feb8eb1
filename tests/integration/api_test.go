package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/plantops/greenops/internal/adapter/http/fiber/handlers"
	"github.com/plantops/greenops/internal/adapter/http/fiber/middleware"
	"github.com/plantops/greenops/internal/adapter/storage/postgres"
	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/mocks"
	"github.com/plantops/greenops/internal/service/admin"
	"github.com/plantops/greenops/internal/service/analytics"
	"github.com/plantops/greenops/internal/service/notify"
	"github.com/plantops/greenops/internal/service/remedy"
)

const testJWTSecret = "integration-test-secret"

// newTestApp wires the HTTP surface against the containerized Postgres,
// with queue and notification channels mocked.
func newTestApp(env *TestEnv) *fiber.App {
	repo := postgres.NewRecordRepository(env.DB, env.Logger)
	analyticsService := analytics.NewService(repo, nil, env.Logger)
	configStore := admin.NewConfigStore(domain.DefaultAnalysisConfig(), env.Logger)
	notifier := notify.NewService(mocks.NewMockMessageQueue(), nil, nil, env.Logger)
	remedyService := remedy.NewService(&mocks.FixedIDGenerator{Prefix: "WO-TEST"}, notifier, env.Logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(env.Logger),
	})

	v1 := app.Group("/api/v1")

	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, configStore, env.Logger)
	v1.Get("/data", analyticsHandler.GetData)
	v1.Get("/kpis", analyticsHandler.GetKPIs)
	v1.Get("/anomalies", analyticsHandler.GetAnomalies)
	v1.Get("/report", analyticsHandler.GetReport)
	v1.Get("/pipeline", analyticsHandler.RunPipeline)

	remedyHandler := handlers.NewRemedyHandler(remedyService, configStore, env.Logger)
	v1.Post("/remedy/plan", remedyHandler.CreatePlan)
	v1.Post("/remedy/priorities", remedyHandler.RankPriorities)

	adminHandler := handlers.NewAdminHandler(configStore, env.Logger)
	v1.Get("/config", adminHandler.GetConfig)
	v1.Put("/config", middleware.AdminRequired(testJWTSecret), adminHandler.UpdateConfig)

	return app
}

func adminToken(t *testing.T) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "test-admin",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func seedData(t *testing.T, env *TestEnv) {
	repo := postgres.NewRecordRepository(env.DB, env.Logger)
	base := time.Date(2026, 8, 29, 2, 0, 0, 0, time.UTC)
	if err := repo.Save(context.Background(), sampleRecords(base)); err != nil {
		t.Fatalf("Failed to seed records: %v", err)
	}
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Body is not JSON: %v\n%s", err, body)
	}
	return decoded
}

func TestAPI_GetData(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)
	seedData(t, env)
	app := newTestApp(env)

	req, _ := http.NewRequest("GET", "/api/v1/data", nil)
	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["count"].(float64) != 3 {
		t.Errorf("expected count 3, got %v", body["count"])
	}

	// The seed includes a record with a missing temperature reading; it
	// must serialize as null, not break the response.
	sawNull := false
	for _, raw := range body["data"].([]interface{}) {
		rec := raw.(map[string]interface{})
		if rec["temperature_c"] == nil {
			sawNull = true
		}
	}
	if !sawNull {
		t.Errorf("expected one record with null temperature_c")
	}
}

func TestAPI_GetData_EmptyDatasetReturns404(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)
	app := newTestApp(env)

	req, _ := http.NewRequest("GET", "/api/v1/data", nil)
	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for empty dataset, got %d", resp.StatusCode)
	}
}

func TestAPI_GetData_InvalidDateReturns400(t *testing.T) {
	env := SetupTestEnvironment(t)
	app := newTestApp(env)

	req, _ := http.NewRequest("GET", "/api/v1/data?start_date=yesterday", nil)
	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", resp.StatusCode)
	}
}

func TestAPI_GetKPIs(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)
	seedData(t, env)
	app := newTestApp(env)

	req, _ := http.NewRequest("GET", "/api/v1/kpis", nil)
	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if _, ok := body["total_energy_kwh"]; !ok {
		t.Errorf("expected total_energy_kwh in KPI payload, got %v", body)
	}
}

func TestAPI_GetReportText(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)
	seedData(t, env)
	app := newTestApp(env)

	req, _ := http.NewRequest("GET", "/api/v1/report?format=text", nil)
	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if _, ok := body["report"].(string); !ok {
		t.Errorf("expected text report in payload, got %v", body)
	}
}

func TestAPI_RunPipeline(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)
	seedData(t, env)
	app := newTestApp(env)

	req, _ := http.NewRequest("GET", "/api/v1/pipeline", nil)
	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if _, ok := body["kpis"].(map[string]interface{}); !ok {
		t.Errorf("expected kpis in pipeline payload, got %v", body)
	}
	if _, ok := body["anomalies"]; !ok {
		t.Errorf("expected anomalies in pipeline payload")
	}
}

func TestAPI_CreateRemediationPlan(t *testing.T) {
	env := SetupTestEnvironment(t)
	app := newTestApp(env)

	payload := map[string]interface{}{
		"anomaly": map[string]interface{}{
			"type":         "PAINT_OVEN_IDLE",
			"zone":         "ZONE-PAINT-SHOP",
			"timestamp":    "2026-08-29T03:00:00Z",
			"energy_kwh":   180.0,
			"expected_kwh": 50.0,
			"severity":     "HIGH",
		},
	}
	encoded, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", "/api/v1/remedy/plan", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	plan, ok := body["plan"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected plan object, got %v", body)
	}
	if plan["work_order_id"] != "WO-TEST-0001" {
		t.Errorf("expected deterministic work order id, got %v", plan["work_order_id"])
	}
	if plan["status"] != "OPEN" {
		t.Errorf("expected OPEN status, got %v", plan["status"])
	}
}

func TestAPI_CreateRemediationPlan_MissingTypeReturns400(t *testing.T) {
	env := SetupTestEnvironment(t)
	app := newTestApp(env)

	encoded, _ := json.Marshal(map[string]interface{}{"anomaly": map[string]interface{}{"zone": "ZONE-ASSEMBLY"}})
	req, _ := http.NewRequest("POST", "/api/v1/remedy/plan", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAPI_RankPriorities(t *testing.T) {
	env := SetupTestEnvironment(t)
	app := newTestApp(env)

	payload := map[string]interface{}{
		"anomalies": []map[string]interface{}{
			{"type": "COMPRESSED_AIR_LEAK", "zone": "ZONE-BODY-SHOP", "energy_kwh": 120.0, "expected_kwh": 90.0, "severity": "MEDIUM"},
			{"type": "PAINT_OVEN_IDLE", "zone": "ZONE-PAINT-SHOP", "energy_kwh": 180.0, "expected_kwh": 50.0, "severity": "HIGH"},
		},
		"limit": 5,
	}
	encoded, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", "/api/v1/remedy/priorities", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["count"].(float64) != 2 {
		t.Errorf("expected 2 ranked anomalies, got %v", body["count"])
	}
}

func TestAPI_UpdateConfig_RequiresAdminToken(t *testing.T) {
	env := SetupTestEnvironment(t)
	app := newTestApp(env)

	encoded, _ := json.Marshal(domain.DefaultAnalysisConfig())

	t.Run("no token", func(t *testing.T) {
		req, _ := http.NewRequest("PUT", "/api/v1/config", bytes.NewReader(encoded))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, 30000)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("admin token", func(t *testing.T) {
		req, _ := http.NewRequest("PUT", "/api/v1/config", bytes.NewReader(encoded))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		resp, err := app.Test(req, 30000)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	})
}
