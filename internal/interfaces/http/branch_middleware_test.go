package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/gestaoloja/estoque-api/internal/interfaces/http"
	pkgjwt "github.com/gestaoloja/estoque-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUserName  = "maria"
	testBranchID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "estoque-api-test"
	testExpMin    = 60
)

// buildTestApp constrói uma aplicação Fiber mínima com o BranchMiddleware e um
// handler que devolve os locals carregados do token.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.BranchMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"user_name": apphttp.GetUserName(c),
			"branch_id": apphttp.GetBranchID(c),
		})
	})
	return app
}

func testToken(t *testing.T, branchID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserName, branchID, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// BranchMiddleware — extração do escopo de filial
// ──────────────────────────────────────────────────────────────────────────────

// Token válido: os claims viram locals e a requisição passa.
func TestBranchMiddleware_TokenValidoCarregaLocals(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, testToken(t, testBranchID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUserName, body["user_name"])
	assert.Equal(t, testBranchID, body["branch_id"])
}

// Sem header Authorization: 401 MISSING_TOKEN.
func TestBranchMiddleware_SemAuthHeader(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token malformado: 401 INVALID_TOKEN.
func TestBranchMiddleware_TokenInvalido(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token sem filial: o escopo de dados viria vazio, a requisição é barrada.
func TestBranchMiddleware_TokenSemFilial(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, testToken(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT pkg — integridade do generate/parse com filial
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserName, testBranchID, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, userName, branchID, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testUserName, userName)
	assert.Equal(t, testBranchID, branchID)
}

func TestJWT_TokenExpirado(t *testing.T) {
	// Token com expiração -1 minuto (já expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserName, testBranchID, testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado deve retornar erro")
}

func TestJWT_SecretIncorreto(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUserName, testBranchID, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("outro-secret-completamente-diferente", tok)
	assert.Error(t, err, "secret incorreto deve invalidar o token")
}
