package app

import (
	"bytes"
	"encoding/json"
	"humaniq_backend/internal/config"
	"humaniq_backend/internal/model"
	"humaniq_backend/internal/util"
	"humaniq_backend/pkg/database"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	testSecret = "test-secret-with-at-least-32-characters"
	courseSlug = "gestao-estresse-qualidade-vida"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T, validationPerHour int) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	colabs := []model.Colaborador{
		{ID: "colab-1", Nome: "Ana Souza", EmpresaID: "empresa-1", Ativo: true},
		{ID: "colab-2", Nome: "Bruno Lima", EmpresaID: "empresa-2", Ativo: true},
	}
	if err := db.Create(&colabs).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: config.ModeTest},
		JWT:     config.JWTConfig{Secret: testSecret},
		Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
		RateLimit: config.RateLimitConfig{
			MaxRequests:       1000,
			WindowMinutes:     1,
			ValidationPerHour: validationPerHour,
		},
		Scheduler: config.SchedulerConfig{FollowUpMaxRetries: 3},
	}

	a, err := build(cfg, db, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return a
}

func token(t *testing.T, userID string, role model.UserRole, empresaID string) string {
	t.Helper()
	tok, err := util.GenerateJWT(userID, role, empresaID, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func call(t *testing.T, a *App, method, path, tok string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode body %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, env
}

func TestCourseLifecycleOverHTTP(t *testing.T) {
	a := newTestApp(t, 100)
	colab := token(t, "colab-1", model.RoleColaborador, "empresa-1")
	gestor := token(t, "gestor-1", model.RoleEmpresa, "empresa-1")

	// closed by default
	if code, _ := call(t, a, http.MethodPost, "/api/cursos/progresso", colab, gin.H{"cursoSlug": courseSlug}); code != http.StatusForbidden {
		t.Fatalf("start before release: expected 403, got %d", code)
	}

	code, _ := call(t, a, http.MethodPut, "/api/colaboradores/colab-1/cursos/"+courseSlug+"/disponibilidade", gestor, gin.H{"disponivel": true})
	if code != http.StatusOK {
		t.Fatalf("release: expected 200, got %d", code)
	}

	code, _ = call(t, a, http.MethodPost, "/api/cursos/progresso", colab, gin.H{"cursoId": "2", "cursoSlug": courseSlug})
	if code != http.StatusCreated {
		t.Fatalf("start: expected 201, got %d", code)
	}
	if code, _ = call(t, a, http.MethodPost, "/api/cursos/progresso", colab, gin.H{"cursoId": "2", "cursoSlug": courseSlug}); code != http.StatusOK {
		t.Fatalf("start again: expected 200, got %d", code)
	}

	// evaluation before finishing the modules
	answers := []string{"a", "b", "c", "d", "a", "b", "c", "d", "a", "b"}
	sub := gin.H{"cursoId": "2", "respostas": answers, "pontuacao": 8, "totalQuestoes": 10, "tempoGasto": 600}
	if code, _ := call(t, a, http.MethodPost, "/api/cursos/avaliacao/"+courseSlug, colab, sub); code != http.StatusBadRequest {
		t.Fatalf("early evaluation: expected 400, got %d", code)
	}

	for m := 1; m <= 3; m++ {
		path := "/api/cursos/progresso/" + courseSlug + "/modulo/" + strconv.Itoa(m)
		if code, _ := call(t, a, http.MethodPost, path, colab, nil); code != http.StatusOK {
			t.Fatalf("complete module %d: got %d", m, code)
		}
	}
	if code, _ := call(t, a, http.MethodPost, "/api/cursos/progresso/"+courseSlug+"/modulo/9", colab, nil); code != http.StatusBadRequest {
		t.Fatalf("module outside course: expected 400, got %d", code)
	}

	_, env := call(t, a, http.MethodGet, "/api/cursos/progresso/"+courseSlug, colab, nil)
	var progress model.CourseProgress
	json.Unmarshal(env.Data, &progress)
	if progress.ProgressoPorcentagem != 100 || progress.DataConclusao == nil {
		t.Fatalf("expected full progress, got %+v", progress)
	}

	code, env = call(t, a, http.MethodPost, "/api/cursos/avaliacao/"+courseSlug, colab, sub)
	if code != http.StatusOK {
		t.Fatalf("evaluation: expected 200, got %d (%s)", code, env.Message)
	}
	var result struct {
		Aprovado  bool `json:"aprovado"`
		Tentativa int  `json:"tentativa"`
	}
	json.Unmarshal(env.Data, &result)
	if !result.Aprovado || result.Tentativa != 1 {
		t.Fatalf("expected approval on first attempt, got %+v", result)
	}

	code, env = call(t, a, http.MethodPost, "/api/cursos/certificado/"+courseSlug, colab, gin.H{"cursoId": "2"})
	if code != http.StatusCreated {
		t.Fatalf("issue: expected 201, got %d (%s)", code, env.Message)
	}
	var cert model.CourseCertificate
	json.Unmarshal(env.Data, &cert)
	if !strings.HasPrefix(cert.CodigoValidacao, "HQ-") || cert.ColaboradorNome != "Ana Souza" {
		t.Fatalf("unexpected certificate: %+v", cert)
	}

	code, env = call(t, a, http.MethodPost, "/api/cursos/certificado/"+courseSlug, colab, gin.H{"cursoId": "2"})
	var again model.CourseCertificate
	json.Unmarshal(env.Data, &again)
	if code != http.StatusOK || again.CodigoValidacao != cert.CodigoValidacao {
		t.Fatalf("issue again: expected the same certificate, got %d %+v", code, again)
	}

	// public lookup, lowercase input included
	code, env = call(t, a, http.MethodGet, "/api/cursos/validar-certificado/"+strings.ToLower(cert.CodigoValidacao), "", nil)
	var validation struct {
		Valido      bool `json:"valido"`
		Certificado *struct {
			ColaboradorNome string `json:"colaboradorNome"`
		} `json:"certificado"`
	}
	json.Unmarshal(env.Data, &validation)
	if code != http.StatusOK || !validation.Valido || validation.Certificado == nil || validation.Certificado.ColaboradorNome != "Ana Souza" {
		t.Fatalf("validate: got %d %s", code, env.Data)
	}

	// the certificate locks the course
	_, env = call(t, a, http.MethodGet, "/api/cursos/disponibilidade/"+courseSlug, colab, nil)
	var status model.AvailabilityStatus
	json.Unmarshal(env.Data, &status)
	if status.Available {
		t.Fatalf("course should be locked after certification")
	}

	_, env = call(t, a, http.MethodGet, "/api/cursos/meus-certificados", colab, nil)
	var list []json.RawMessage
	json.Unmarshal(env.Data, &list)
	if len(list) != 1 {
		t.Fatalf("expected one certificate, got %d", len(list))
	}
}

func TestValidateUnknownCode(t *testing.T) {
	a := newTestApp(t, 100)

	code, env := call(t, a, http.MethodGet, "/api/cursos/validar-certificado/HQ-NAOEXISTE-00000000", "", nil)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	var validation struct {
		Valido bool `json:"valido"`
	}
	if err := json.Unmarshal(env.Data, &validation); err != nil || validation.Valido {
		t.Fatalf("expected data.valido=false, got %s", env.Data)
	}
}

func TestValidationIsRateLimited(t *testing.T) {
	a := newTestApp(t, 2)

	for i := 0; i < 2; i++ {
		if code, _ := call(t, a, http.MethodGet, "/api/cursos/validar-certificado/HQ-X-1", "", nil); code != http.StatusNotFound {
			t.Fatalf("request %d: expected 404, got %d", i, code)
		}
	}
	if code, _ := call(t, a, http.MethodGet, "/api/cursos/validar-certificado/HQ-X-1", "", nil); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
}

func TestRouteAuthorization(t *testing.T) {
	a := newTestApp(t, 100)
	colab := token(t, "colab-1", model.RoleColaborador, "empresa-1")
	gestor := token(t, "gestor-1", model.RoleEmpresa, "empresa-1")
	admin := token(t, "root", model.RoleAdmin, "")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   int
	}{
		{"no token", http.MethodGet, "/api/cursos/meus-certificados", "", nil, http.StatusUnauthorized},
		{"forged token", http.MethodGet, "/api/cursos/meus-certificados", "not-a-jwt", nil, http.StatusUnauthorized},
		{"collaborator on company route", http.MethodGet, "/api/colaboradores/colab-1/cursos-detalhes", colab, nil, http.StatusForbidden},
		{"company on own collaborator", http.MethodGet, "/api/colaboradores/colab-1/cursos-detalhes", gestor, nil, http.StatusOK},
		{"company on other company", http.MethodGet, "/api/colaboradores/colab-2/cursos-detalhes", gestor, nil, http.StatusForbidden},
		{"company purge other company", http.MethodDelete, "/api/colaboradores/remover-cursos", gestor, gin.H{"colaboradorId": "colab-2"}, http.StatusForbidden},
		{"company on admin purge", http.MethodDelete, "/api/cursos/admin/purge-cursos-dados", gestor, gin.H{"confirmar": true}, http.StatusForbidden},
		{"admin purge unconfirmed", http.MethodDelete, "/api/cursos/admin/purge-cursos-dados", admin, gin.H{}, http.StatusBadRequest},
		{"admin purge confirmed", http.MethodDelete, "/api/cursos/admin/purge-cursos-dados", admin, gin.H{"confirmar": true}, http.StatusOK},
		{"invalid slug", http.MethodGet, "/api/cursos/progresso/Curso_Invalido", colab, nil, http.StatusBadRequest},
		{"unknown course availability", http.MethodPut, "/api/colaboradores/colab-1/cursos/nao-existe/disponibilidade", gestor, gin.H{"disponivel": true}, http.StatusNotFound},
		{"catalog", http.MethodGet, "/api/cursos/catalogo", gestor, nil, http.StatusOK},
		{"health", http.MethodGet, "/api/health", "", nil, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code, env := call(t, a, tc.method, tc.path, tc.token, tc.body); code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, code, env.Message)
			}
		})
	}
}
