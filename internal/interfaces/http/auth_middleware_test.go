package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logmam/logmam-api/internal/application/analytics"
	"github.com/logmam/logmam-api/internal/application/auth"
	"github.com/logmam/logmam-api/internal/application/mutation"
	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/filter"
	apphttp "github.com/logmam/logmam-api/internal/interfaces/http"
	"github.com/logmam/logmam-api/internal/infrastructure/pdf"
	"github.com/logmam/logmam-api/pkg/config"
	pkgjwt "github.com/logmam/logmam-api/pkg/jwt"
	"github.com/logmam/logmam-api/pkg/logger"
)

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testShareToken = "logmam-transport-view-only-access-2024"
	testIssuer     = "logmam-api-test"
	testExpMin     = 60
)

// memStore Record Store em memória para os testes de handler.
type memStore struct{ blobs map[string][]byte }

func (m *memStore) Load(_ context.Context, key string, dest any) error {
	if raw, ok := m.blobs[key]; ok {
		return json.Unmarshal(raw, dest)
	}
	return nil
}

func (m *memStore) Save(_ context.Context, key string, src any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}
	m.blobs[key] = raw
	return nil
}

// buildTestApp monta a aplicação completa sem assistente (nenhum teste aqui
// conversa com o modelo).
func buildTestApp(t *testing.T) (*fiber.App, *mutation.Service) {
	t.Helper()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	muts := mutation.NewService(context.Background(), &memStore{blobs: map[string][]byte{}}, log)

	authSvc := auth.NewService(muts,
		config.JWTConfig{Secret: testJWTSecret, Expiration: testExpMin, Issuer: testIssuer},
		config.ShareConfig{Token: testShareToken},
		"http://localhost:8080",
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Mutations: muts,
		Auth:      authSvc,
		Analytics: analytics.NewService(muts),
		PDF:       pdf.NewReportGenerator(),
		JWTSecret: testJWTSecret,
	})
	return app, muts
}

func tokenFor(t *testing.T, userID, name string, guest bool) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, name, "Admin", guest, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_SemToken(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/transactions/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/transactions/", "Bearer nao-e-um-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTransactions_CriarEListar(t *testing.T) {
	app, _ := buildTestApp(t)
	token := tokenFor(t, "u1", "Eduardo", false)

	resp := doJSON(t, app, http.MethodPost, "/api/transactions/", token, fiber.Map{
		"date":      "2025-01-02",
		"operation": entity.OperationEntrada,
		"input":     100,
		"value":     200,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/transactions/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []entity.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "100", list[0].Balance.String())
	assert.Equal(t, "2", list[0].UnitKg.String())
}

// Sessão de convidado lê mas não escreve.
func TestGuest_EscritaBloqueada(t *testing.T) {
	app, _ := buildTestApp(t)
	guestToken := tokenFor(t, entity.GuestUserID, "Convidado", true)

	resp := doJSON(t, app, http.MethodGet, "/api/transactions/", guestToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/transactions/", guestToken, fiber.Map{
		"date":      "2025-01-02",
		"operation": entity.OperationEntrada,
		"input":     10,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDelete_ExigeConfirmacao(t *testing.T) {
	app, muts := buildTestApp(t)
	token := tokenFor(t, "u1", "Eduardo", false)

	created, _, err := muts.CreateTransaction(context.Background(),
		mutation.Actor{UserID: "u1", Name: "Eduardo"},
		entity.Transaction{Date: "2025-01-01", Operation: entity.OperationEntrada})
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodDelete, "/api/transactions/"+created.ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/transactions/"+created.ID+"?confirm=true", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestShare_EntrarComToken(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/share/enter", "", fiber.Map{
		"share_id":  testShareToken,
		"view":      "history",
		"startDate": "2025-01-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entry struct {
		Token        string                    `json:"token"`
		User         entity.User               `json:"user"`
		View         string                    `json:"view"`
		Transactions filter.TransactionFilters `json:"transactionFilters"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	assert.Equal(t, entity.GuestUserID, entry.User.ID)
	assert.Equal(t, "history", entry.View)
	assert.Equal(t, "2025-01-01", entry.Transactions.StartDate)
	assert.Equal(t, filter.All, entry.Transactions.Operation)

	// O token emitido carrega o claim de convidado.
	claims, err := pkgjwt.Parse(testJWTSecret, entry.Token)
	require.NoError(t, err)
	assert.True(t, claims.Guest)
}

// Tela fora do conjunto visível a convidados cai em home, sem filtros.
func TestShare_TelaDesconhecida(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/share/enter", "", fiber.Map{
		"share_id": testShareToken,
		"view":     "users",
		"client":   "MONDELEZ",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entry struct {
		View    string               `json:"view"`
		Pallets filter.PalletFilters `json:"palletFilters"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	assert.Equal(t, "home", entry.View)
	assert.True(t, entry.Pallets.IsZero())
}

func TestShare_TokenErrado(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/share/enter", "", fiber.Map{
		"share_id": "qualquer-coisa",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExport_CSV(t *testing.T) {
	app, muts := buildTestApp(t)
	token := tokenFor(t, "u1", "Eduardo", false)

	_, _, err := muts.CreateTransaction(context.Background(),
		mutation.Actor{UserID: "u1", Name: "Eduardo"},
		entity.Transaction{Date: "2025-01-01", Operation: entity.OperationEntrada, Conferente: "Eduardo"})
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodGet, "/api/transactions/export?format=csv", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "movimentacoes_stretch.csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])
}

func TestLogin_FluxoCompleto(t *testing.T) {
	app, muts := buildTestApp(t)

	_, _, err := muts.AddUser(context.Background(),
		mutation.Actor{UserID: "seed", Name: "seed"},
		"Eduardo", "Admin", "log123", "")
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"name": "eduardo", "password": "log123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sess struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sess))

	resp = doJSON(t, app, http.MethodGet, "/api/dashboards/general", "Bearer "+sess.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
