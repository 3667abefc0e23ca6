//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"tripwise/internal/adapters/chatapi"
	server "tripwise/internal/adapters/http_server"
	"tripwise/internal/app"
	"tripwise/internal/catalog"
	"tripwise/internal/domain"
	mysqlrepo "tripwise/internal/storage/mysql"
)

// ---------- helpers ----------

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Skipf("%s not set; export it (e.g. MIGRATIONS_DIR=$PWD/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	mustEnv(t, "MIGRATIONS_DIR")

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=tripwise",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", resource.GetPort("3306/tcp"), "tripwise")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func send(t *testing.T, method, url, body, session string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set(server.SessionHeader, session)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

// ---------- test ----------

func TestHTTP_EndToEnd_SetupChatHandoff_MySQL(t *testing.T) {
	db := startMySQL(t)
	store := mysqlrepo.New(db)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chat":
			_, _ = w.Write([]byte(`{"success":true,"response":"How about Kyoto in spring?"}`))
		case "/summarize":
			_, _ = w.Write([]byte(`{"success":true,"preferences":{"destination":"Kyoto","travelers":2},"tripPlans":[{"id":"gp-1","title":"Temples and tea","destination":"Kyoto","estimatedCost":2600}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	q, err := app.NewQueryService(catalog.Default())
	if err != nil {
		t.Fatalf("query service: %v", err)
	}
	chat, err := chatapi.New(upstream.URL, "", 50)
	if err != nil {
		t.Fatalf("chat client: %v", err)
	}
	setup := app.NewTripSetupService(store, 0)
	handoff := app.NewHandoffService(store, time.Minute)

	srv := server.New(server.Options{RequestTimeout: 10 * time.Second})
	srv.MountHandlers(&server.Handlers{
		Q:       q,
		Setup:   setup,
		Chat:    app.NewChatService(chat, q, setup, handoff),
		Handoff: handoff,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	const sess = "e2e-session-01"

	res := send(t, "PATCH", ts.URL+"/v1/trip-setup",
		`{"destination":"Kyoto","fromDate":"2025-04-01","toDate":"2025-04-08","travelers":2,"budget":"3,000","currency":"jpy"}`, sess)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("patch status %d", res.StatusCode)
	}

	// a fresh service over the same table sees the saved record
	reloaded := app.NewTripSetupService(mysqlrepo.New(db), 0).Load(context.Background(), sess)
	if reloaded.Destination != "Kyoto" || reloaded.Budget != "3000" || reloaded.Currency != "JPY" || reloaded.Travelers != 2 {
		t.Fatalf("unexpected persisted setup: %+v", reloaded)
	}

	res = send(t, "GET", ts.URL+"/v1/chat/opening", "", sess)
	var opening map[string]string
	if err := json.NewDecoder(res.Body).Decode(&opening); err != nil {
		t.Fatalf("decode opening: %v", err)
	}
	if !strings.Contains(opening["message"], "Kyoto from 2025-04-01 to 2025-04-08") {
		t.Fatalf("opening should reflect saved setup: %q", opening["message"])
	}

	res = send(t, "POST", ts.URL+"/v1/chat/summarize", `{"conversationHistory":[{"role":"user","content":"temples"}]}`, sess)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("summarize status %d", res.StatusCode)
	}

	res = send(t, "GET", ts.URL+"/v1/handoff", "", sess)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("handoff status %d", res.StatusCode)
	}
	var h domain.Handoff
	if err := json.NewDecoder(res.Body).Decode(&h); err != nil {
		t.Fatalf("decode handoff: %v", err)
	}
	if h.Preferences == nil || h.Preferences.Travelers != 2 || len(h.Plans) != 1 || h.Plans[0].ID != "gp-1" {
		t.Fatalf("unexpected handoff: %+v", h)
	}
	if res := send(t, "GET", ts.URL+"/v1/handoff", "", sess); res.StatusCode != http.StatusNotFound {
		t.Fatalf("handoff must be consumed once, got %d", res.StatusCode)
	}

	if res := send(t, "DELETE", ts.URL+"/v1/trip-setup", "", sess); res.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", res.StatusCode)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM storage_entries WHERE k = ?`, "tripSetup:"+sess).Scan(&n); err != nil || n != 0 {
		t.Fatalf("row should be gone: n=%d err=%v", n, err)
	}
}
