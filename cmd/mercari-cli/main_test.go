package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercari-cli/internal/api"
	"mercari-cli/internal/config"
	"mercari-cli/internal/history"
	"mercari-cli/internal/itemlist"
	"mercari-cli/internal/items"

	"github.com/sirupsen/logrus"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			_, _ = w.Write([]byte(`{"message":"Hello, world!"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/items":
			_, _ = w.Write([]byte(`{"items":[{"id":1,"name":"Jacket","category":"fashion","image_name":"a.jpg"},{"id":2,"name":"Ball","category":"toys","image_name":""}]}`))
		case r.Method == http.MethodGet && r.URL.Path == "/items/1":
			_, _ = w.Write([]byte(`{"items":[{"id":1,"name":"Jacket","category":"fashion","image_name":"a.jpg"}]}`))
		case r.Method == http.MethodGet && r.URL.Path == "/search":
			if r.URL.Query().Get("keyword") != "ball" {
				_, _ = w.Write([]byte(`{"items":[]}`))
				return
			}
			_, _ = w.Write([]byte(`{"items":[{"id":2,"name":"Ball","category":"toys","image_name":""}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/items":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"message":"item received: ` + r.FormValue("name") + `"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, url string) *api.Client {
	t.Helper()
	client, err := api.New(api.Options{BaseURL: url})
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	return client
}

func TestRunListTable(t *testing.T) {
	srv := newTestServer(t)
	var out bytes.Buffer
	err := runList(context.Background(), newTestClient(t, srv.URL), listOptions{
		Images: itemlist.NewImageSource(srv.URL, "http://front"),
	}, &out)
	if err != nil {
		t.Fatalf("runList: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Jacket", "Ball", srv.URL + "/images/a.jpg", "http://front/logo192.png", "2 items"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Jacket") > strings.Index(got, "Ball") {
		t.Fatalf("rows should keep server order:\n%s", got)
	}
}

func TestRunListJSON(t *testing.T) {
	srv := newTestServer(t)
	var out bytes.Buffer
	if err := runList(context.Background(), newTestClient(t, srv.URL), listOptions{JSON: true}, &out); err != nil {
		t.Fatalf("runList: %v", err)
	}
	var env items.Envelope
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(env.Items) != 2 || env.Items[0].Name != "Jacket" {
		t.Fatalf("unexpected items %+v", env.Items)
	}
}

type emptyFetcher struct{}

func (emptyFetcher) FetchItems(ctx context.Context) (items.Collection, error) {
	return items.Collection{}, nil
}

func TestRunListEmptyUsesLocalizedLabel(t *testing.T) {
	var out bytes.Buffer
	if err := runList(context.Background(), emptyFetcher{}, listOptions{}, &out); err != nil {
		t.Fatalf("runList: %v", err)
	}
	if got := out.String(); got != "No items\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestRunListPropagatesFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	err := runList(context.Background(), newTestClient(t, srv.URL), listOptions{}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Fatalf("err = %v, want status 500", err)
	}
}

func TestRunListSearchFetcher(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	var out bytes.Buffer
	err := runList(context.Background(), searchFetcher{client: client, keyword: "ball"}, listOptions{
		Images: imageSource(client, config.Config{FrontendURL: "http://front"}),
	}, &out)
	if err != nil {
		t.Fatalf("runList: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Ball") || strings.Contains(got, "Jacket") || !strings.Contains(got, "1 items") {
		t.Fatalf("output = %s", got)
	}
}

func TestRunListSingleFetcher(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL+"/")
	var out bytes.Buffer
	err := runList(context.Background(), singleFetcher{client: client, id: 1}, listOptions{
		Images: imageSource(client, config.Config{FrontendURL: "http://front"}),
	}, &out)
	if err != nil {
		t.Fatalf("runList: %v", err)
	}
	if got := out.String(); !strings.Contains(got, srv.URL+"/images/a.jpg") {
		t.Fatalf("image url should use normalized base:\n%s", got)
	}

	err = runList(context.Background(), singleFetcher{client: client, id: 5}, listOptions{}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("err = %v, want status 404", err)
	}
}

func TestParseItemID(t *testing.T) {
	if id, err := parseItemID("12"); err != nil || id != 12 {
		t.Fatalf("parseItemID(12) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "abc", "0", "-3"} {
		if _, err := parseItemID(bad); err == nil {
			t.Fatalf("parseItemID(%q) should fail", bad)
		}
	}
}

func TestRunPing(t *testing.T) {
	srv := newTestServer(t)
	var out bytes.Buffer
	if err := runPing(context.Background(), newTestClient(t, srv.URL), &out); err != nil {
		t.Fatalf("runPing: %v", err)
	}
	if got := out.String(); got != "ok: Hello, world!\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestRunAdd(t *testing.T) {
	srv := newTestServer(t)
	img := filepath.Join(t.TempDir(), "jacket.jpg")
	if err := os.WriteFile(img, []byte("jpeg"), 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}
	var out bytes.Buffer
	req := api.AddItemRequest{Name: "Jacket", Category: "fashion", ImagePath: img}
	journal := &history.Store{Path: filepath.Join(t.TempDir(), "listings.jsonl")}
	if err := runAdd(context.Background(), newTestClient(t, srv.URL), journal, req, &out); err != nil {
		t.Fatalf("runAdd: %v", err)
	}
	if got := out.String(); got != "ok: item received: Jacket\n" {
		t.Fatalf("output = %q", got)
	}
	listings, err := journal.Load()
	if err != nil || len(listings) != 1 || listings[0].Image != "jacket.jpg" {
		t.Fatalf("journal = %+v err=%v", listings, err)
	}

	err = runAdd(context.Background(), newTestClient(t, srv.URL), nil, api.AddItemRequest{Name: "x"}, &out)
	if err == nil || !strings.Contains(err.Error(), "category is required") {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestRunConfigSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.ServerURL = "http://example:9000"
	cfg.Source = path

	var out bytes.Buffer
	if err := runConfig(cfg, &cfg, &out); err != nil {
		t.Fatalf("runConfig: %v", err)
	}
	if !strings.Contains(out.String(), "http://example:9000") {
		t.Fatalf("output = %q", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	if !strings.Contains(string(data), "http://example:9000") {
		t.Fatalf("saved config = %q", data)
	}
}

func TestRootCommandConfigSaveSkipsEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SERVER_URL", "http://from-env")
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "--log-file", "-", "-c", "lang=ja", "config", "--save"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "http://from-env") {
		t.Fatalf("printed config should include env value:\n%s", out.String())
	}
	saved, err := config.LoadFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if saved.ServerURL != config.DefaultServerURL {
		t.Fatalf("env value persisted: %q", saved.ServerURL)
	}
	if saved.Language != "ja" {
		t.Fatalf("-c override not persisted: %q", saved.Language)
	}
}

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SERVER_URL", "VITE_BACKEND_URL", "FRONTEND_URL", "VITE_FRONTEND_URL", "MERCARI_LANGUAGE"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
}

func TestRootCommandListWithOverride(t *testing.T) {
	isolateEnv(t)
	srv := newTestServer(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "--log-file", "-", "-c", "server_url=" + srv.URL, "list", "--json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), `"name": "Ball"`) {
		t.Fatalf("output = %s", out.String())
	}
}

func TestRootCommandSearchAndShow(t *testing.T) {
	isolateEnv(t)
	srv := newTestServer(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	cases := []struct {
		args []string
		want string
	}{
		{args: []string{"search", "ball", "--json"}, want: `"name": "Ball"`},
		{args: []string{"show", "1", "--json"}, want: `"name": "Jacket"`},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"--config", cfgPath, "--log-file", "-", "-c", "server_url=" + srv.URL}, tc.args...))
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: %v\n%s", tc.args, err, out.String())
		}
		if !strings.Contains(out.String(), tc.want) {
			t.Fatalf("%v output = %s", tc.args, out.String())
		}
	}
}

func TestRootCommandWritesAPILog(t *testing.T) {
	isolateEnv(t)
	prev := logrus.GetLevel()
	t.Cleanup(func() {
		logrus.SetLevel(prev)
		logrus.SetOutput(os.Stderr)
	})
	srv := newTestServer(t)
	dir := t.TempDir()
	mainLog := filepath.Join(dir, "logs", "mercari-cli.log")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(dir, "config.toml"), "--log-file", mainLog, "--log-level", "debug",
		"-c", "server_url=" + srv.URL, "list"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "logs", "api.log"))
	if err != nil {
		t.Fatalf("api log missing: %v", err)
	}
	if !strings.Contains(string(data), "[api] request") || !strings.Contains(string(data), "op=GET /items") {
		t.Fatalf("api log = %q", data)
	}
}

func TestAPILogPath(t *testing.T) {
	if got := apiLogPath("/var/log/mc/main.log"); got != filepath.Join("/var/log/mc", "api.log") {
		t.Fatalf("apiLogPath = %q", got)
	}
	if got := apiLogPath(""); got != filepath.Join("logs", "api.log") {
		t.Fatalf("apiLogPath(\"\") = %q", got)
	}
}

func TestRootCommandVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--log-file", "-", "version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := out.String(); got != "mercari-cli version 0.1.0\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestRootCommandRejectsBadLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-file", "-", "--log-level", "loud", "version"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}
