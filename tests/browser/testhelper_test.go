package browser_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"flightdesk/internal/adapters/api"
	emailPkg "flightdesk/internal/adapters/email"
	web "flightdesk/internal/adapters/http"
	"flightdesk/internal/adapters/http/middleware"
	"flightdesk/internal/adapters/storage"
	sessionStore "flightdesk/internal/adapters/storage/session"
	"flightdesk/internal/config"
)

// testApp holds the running server, the fake backend and Playwright handles.
type testApp struct {
	BaseURL string
	Backend *httptest.Server
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// fakeBackend serves the backend REST surface the flows under test touch,
// with fixed data. Any bearer token is accepted once issued by /login.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	// Bearer tokens are minted as "tok-<role>", so route guards can check
	// the caller's role exactly like the real backend middleware does.
	requireRole := func(role string, h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-"+role {
				writeJSON(w, http.StatusForbidden, map[string]string{"message": "No autorizado"})
				return
			}
			h(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"correo"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Password != "flightdesk123" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Credenciales incorrectas"})
			return
		}
		role, first := "Administrador", "Ana"
		switch creds.Email {
		case "tutor@test.com":
			role, first = "Tutor", "Tomás"
		case "alumno@test.com":
			role, first = "Alumno", "Alba"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "tok-" + role,
			"token_type":   "Bearer",
			"usuario": map[string]any{
				"id_usuario": 7,
				"nombre":     first,
				"apellido":   "García",
				"correo":     creds.Email,
				"rol":        role,
			},
		})
	})
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /usuarios-estadisticas", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{
			"total": 12, "administradores": 1, "tutores": 3, "alumnos": 8, "activos": 11, "inactivos": 1,
		})
	})
	mux.HandleFunc("GET /avionetas-estadisticas", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"total": 4, "activas": 3, "mantenimiento": 1, "horas_totales": 880.5, "promedio_horas": 220.1,
		})
	})
	mux.HandleFunc("GET /vuelos-estadisticas", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"total": 40, "programados": 5, "en_curso": 1, "completados": 32, "cancelados": 2, "horas_totales": 56.5,
		})
	})
	sampleFlights := []map[string]any{
		{
			"id_vuelo": 1, "alumno_id": 7, "tutor_id": 2, "avioneta_id": 1,
			"fecha": "2030-05-20", "hora_inicio": "09:00", "hora_fin": "10:00",
			"estado": "Programado",
			"alumno": map[string]any{"id_usuario": 7, "nombre": "Alba", "apellido": "García"},
			"tutor":  map[string]any{"id_usuario": 2, "nombre": "Tomás", "apellido": "García"},
			"avioneta": map[string]any{
				"id_avioneta": 1, "codigo": "XB-PIL", "modelo": "Cessna 172",
			},
		},
	}
	mux.HandleFunc("GET /vuelos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("paginate") == "true" {
			writeJSON(w, http.StatusOK, map[string]any{
				"data": sampleFlights, "current_page": 1, "last_page": 1, "total": len(sampleFlights),
			})
			return
		}
		writeJSON(w, http.StatusOK, sampleFlights)
	})
	mux.HandleFunc("GET /tutor/mis-vuelos", requireRole("Tutor", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sampleFlights)
	}))
	mux.HandleFunc("GET /alumno/historial-vuelos", requireRole("Alumno", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sampleFlights)
	}))
	mux.HandleFunc("GET /alumno/mi-progreso", requireRole("Alumno", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"alumno": map[string]any{"id_usuario": 7, "nombre": "Alba", "apellido": "García"},
			"estadisticas": map[string]any{
				"total_vuelos": 8, "vuelos_completados": 6, "horas_totales": 9.5,
				"promedio_calificacion_general": 4.2, "total_despegues": 6, "total_aterrizajes": 6,
			},
			"maniobras_dominadas": []string{"Despegue normal", "Viraje coordinado"},
			"ultimas_bitacoras":   []map[string]any{},
		})
	}))
	mux.HandleFunc("GET /notificaciones", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{
				"id_notificacion": 1, "usuario_id": 7, "tipo": "vuelo_programado",
				"titulo": "Vuelo programado", "mensaje": "Tu vuelo quedó **confirmado**.",
				"leida": false, "created_at": "2030-05-19 10:00:00",
			},
		})
	})
	mux.HandleFunc("GET /notificaciones/no-leidas/count", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"count": 1})
	})
	mux.HandleFunc("POST /notificaciones/1/marcar-leida", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newTestApp wires the full app against a fake backend and a temp SQLite
// session store, then starts an HTTP server and a headless browser.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	backend := fakeBackend(t)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)
	web.RateLimitPerSecond = 1000

	cfg := config.Config{
		Addr:             fmt.Sprintf("127.0.0.1:%d", port),
		BackendURL:       backend.URL,
		DBPath:           dbPath,
		SessionBackend:   "sqlite",
		SessionTTL:       time.Hour,
		DevMode:          true,
		NotificationPoll: time.Minute,
		SearchDebounce:   20 * time.Millisecond,
		FilterDebounce:   20 * time.Millisecond,
	}

	mux := web.NewMux("static", &web.Deps{
		Backend:  api.New(cfg.BackendURL),
		Sessions: sessionStore.NewSQLiteStore(db),
		Email:    emailPkg.NewNoopSender(),
		Config:   cfg,
	})
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	baseURL := "http://" + cfg.Addr
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		Backend: backend,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})
	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login signs in with the given email and waits for the role home page.
func (a *testApp) login(t *testing.T, page playwright.Page, email, home string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=correo]").Fill(email); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("flightdesk123"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+home, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to %s: %v", home, err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
