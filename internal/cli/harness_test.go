package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newReplayServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("mode") != "0" || r.URL.Query().Get("rx") != "0" || r.URL.Query().Get("p") != "1" {
			t.Errorf("unexpected leaderboard query: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"users":[{"id":10},{"id":20}]}`)
	})
	mux.HandleFunc("/api/v1/users/scores/best", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id") {
		case "10":
			fmt.Fprint(w, `{"scores":[{"id":100},{"id":101}]}`)
		case "20":
			fmt.Fprint(w, `{"scores":[{"id":200}]}`)
		default:
			fmt.Fprint(w, `{"scores":[]}`)
		}
	})
	mux.HandleFunc("/web/replays/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/web/replays/")
		if id == "101" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "replay-%s", id)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHarnessFetchPlainEndToEnd(t *testing.T) {
	srv := newReplayServer(t)
	outDir := filepath.Join(t.TempDir(), "out")

	stdin := strings.NewReader("vn\nstd\n1\n")
	var stdout, stderr bytes.Buffer
	err := run([]string{"--plain", "--api-base", srv.URL, "--out-dir", outDir}, stdin, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run failed: %v\nstdout:\n%s\nstderr:\n%s", err, stdout.String(), stderr.String())
	}

	got, err := os.ReadFile(filepath.Join(outDir, "10", "100.osr"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "replay-100" {
		t.Fatalf("unexpected replay body: %q", got)
	}
	if _, err := os.Stat(filepath.Join(outDir, "20", "200.osr")); err != nil {
		t.Fatalf("expected 20/200.osr: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "10", "101.osr")); !os.IsNotExist(err) {
		t.Fatalf("missing replay should not be written, stat err=%v", err)
	}

	out := stdout.String()
	for _, want := range []string{
		"Fetching users...",
		"Found 2 players to query.",
		"Enqueued 3 replays to download.",
		"Failed to download replay 101 as it doesn't exist!",
		"Et voila!",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("stdout missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[2K") {
		t.Fatalf("plain mode must not emit line-clearing sequences:\n%q", out)
	}
}

func TestHarnessFetchVerboseLogsResolvedTargets(t *testing.T) {
	srv := newReplayServer(t)
	outDir := filepath.Join(t.TempDir(), "out")

	var stdout, stderr bytes.Buffer
	args := []string{"--plain", "--verbose", "--api-base", srv.URL + "/", "--out-dir", outDir}
	if err := run(args, strings.NewReader("vn\nstd\n1\n"), &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	logs := stderr.String()
	if !strings.Contains(logs, "api_base="+srv.URL+" ") {
		t.Fatalf("expected normalized api base in debug log:\n%s", logs)
	}
	if !strings.Contains(logs, "out_dir="+outDir) {
		t.Fatalf("expected output directory in debug log:\n%s", logs)
	}
	if !strings.Contains(logs, "level=DEBUG") {
		t.Fatalf("verbose run should emit debug logs:\n%s", logs)
	}
}

func TestHarnessFetchQuietStderrByDefault(t *testing.T) {
	srv := newReplayServer(t)
	var stdout, stderr bytes.Buffer
	args := []string{"--plain", "--api-base", srv.URL, "--out-dir", filepath.Join(t.TempDir(), "out")}
	if err := run(args, strings.NewReader("vn\nstd\n1\n"), &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stderr.Len() != 0 {
		t.Fatalf("skip notices belong on stdout only, got stderr:\n%s", stderr.String())
	}
}

func TestHarnessFetchRepromptsOnInvalidAnswers(t *testing.T) {
	srv := newReplayServer(t)
	outDir := filepath.Join(t.TempDir(), "out")

	stdin := strings.NewReader("relax\nvn\nosu\nstandard\none\n1\n")
	var stdout, stderr bytes.Buffer
	if err := run([]string{"--plain", "--api-base", srv.URL, "--out-dir", outDir}, stdin, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	out := stdout.String()
	if n := strings.Count(out, "Incorrect option!"); n != 2 {
		t.Fatalf("expected two incorrect-option notices, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, invalidIntegerMessage) {
		t.Fatalf("expected integer notice:\n%s", out)
	}
}

func TestHarnessFetchEOFBeforeAnswersFails(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	var stdout, stderr bytes.Buffer
	err := run([]string{"--plain", "--api-base", "http://127.0.0.1:1", "--out-dir", outDir}, strings.NewReader("vn\n"), &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error when input ends before all answers")
	}
	if _, statErr := os.Stat(outDir); statErr != nil {
		t.Fatalf("output dir should be created before prompting: %v", statErr)
	}
}

func TestRunHelpPrintsUsage(t *testing.T) {
	for _, arg := range []string{"help", "-h", "--help"} {
		var stdout bytes.Buffer
		if err := run([]string{arg}, strings.NewReader(""), &stdout, &bytes.Buffer{}); err != nil {
			t.Fatalf("%s: %v", arg, err)
		}
		if !strings.Contains(stdout.String(), "--out-dir") {
			t.Fatalf("%s: usage missing flags:\n%s", arg, stdout.String())
		}
	}
}

func TestParseFetchFlagsRejectsBadValues(t *testing.T) {
	cases := [][]string{
		{"--timeout", "-1s"},
		{"--rate", "-2"},
		{"extra"},
		{"--unknown"},
	}
	for _, args := range cases {
		if _, err := parseFetchFlags(args, &bytes.Buffer{}); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestParseFetchFlagsDefaults(t *testing.T) {
	opts, err := parseFetchFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if opts.outDir != "out" || opts.apiBase != "https://ussr.pl" {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.timeout != 0 || opts.rate != 0 || opts.skipFailedPlayers || opts.plain || opts.verbose {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}
