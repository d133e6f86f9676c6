//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/config"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/server"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

const (
	serverPort = 18080
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to locate repo root: %v\n", err)
		os.Exit(1)
	}

	if err := dockerCompose(ctx, root, "up", "-d"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start docker compose: %v\n", err)
		os.Exit(1)
	}

	if err := waitForPostgres(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "postgres not ready: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	if err := runMigrations(root); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	srv, err := startServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown()
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	code := m.Run()

	_ = srv.Shutdown()
	_ = dockerCompose(context.Background(), root, "down")
	os.Exit(code)
}

func TestGuideLifecycle(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	username := fmt.Sprintf("admin_%d", time.Now().UnixNano())
	password := "testpass123!"

	token, err := registerUser(t, baseURL, username, password)
	if err != nil {
		t.Fatalf("register user: %v", err)
	}

	if err := promoteUser(username, "admin"); err != nil {
		t.Fatalf("promote user: %v", err)
	}

	guide, err := createGuide(t, baseURL, token, map[string]string{
		"title":       "Installing Arch",
		"description": "A walkthrough of the Arch installer.",
		"status":      "published",
		"level":       "advanced",
	})
	if err != nil {
		t.Fatalf("create guide: %v", err)
	}
	if guide.ID == 0 {
		t.Fatalf("expected guide ID to be set")
	}
	if guide.Title != "Installing Arch" {
		t.Fatalf("unexpected guide title: %q", guide.Title)
	}

	empty, err := getRawBody(t, baseURL+fmt.Sprintf("/comments/guide/%d", guide.ID))
	if err != nil {
		t.Fatalf("list comments before any exist: %v", err)
	}
	if strings.TrimSpace(empty) != "[]" {
		t.Fatalf("expected empty comment list to encode as [], got %s", empty)
	}

	comment, err := createComment(t, baseURL, token, map[string]any{
		"content":  "Worked first try.",
		"guide_id": guide.ID,
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.ID == 0 {
		t.Fatalf("expected comment ID to be set")
	}

	comments, err := listComments(t, baseURL, "guide", guide.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	if comments[0].Content != "Worked first try." {
		t.Fatalf("unexpected comment content: %q", comments[0].Content)
	}

	if err := doDelete(t, baseURL+fmt.Sprintf("/guides/%d", guide.ID), token); err != nil {
		t.Fatalf("delete guide: %v", err)
	}

	if err := expectStatus(t, baseURL+fmt.Sprintf("/guides/%d", guide.ID), http.StatusNotFound); err != nil {
		t.Fatalf("expected deleted guide to be missing: %v", err)
	}
}

func TestCommentParentScoping(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	username := fmt.Sprintf("admin_%d", time.Now().UnixNano())

	token, err := registerUser(t, baseURL, username, "testpass123!")
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	if err := promoteUser(username, "admin"); err != nil {
		t.Fatalf("promote user: %v", err)
	}

	// Guides and posts draw ids from independent sequences, so a guide and
	// a post can share the same numeric id. Walk both sequences until they
	// collide; listing comments for one must never leak the other's.
	guide, err := createGuide(t, baseURL, token, map[string]string{
		"title":       "Scoping guide",
		"description": "guide body",
		"status":      "published",
	})
	if err != nil {
		t.Fatalf("create guide: %v", err)
	}
	post, err := createPost(t, baseURL, token, fmt.Sprintf("Scoping post %d", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	for i := 0; guide.ID != post.ID; i++ {
		if i > 50 {
			t.Fatalf("guide and post ids never collided: guide=%d post=%d", guide.ID, post.ID)
		}
		if guide.ID < post.ID {
			guide, err = createGuide(t, baseURL, token, map[string]string{
				"title":       "Scoping guide",
				"description": "guide body",
				"status":      "published",
			})
		} else {
			post, err = createPost(t, baseURL, token, fmt.Sprintf("Scoping post %d_%d", time.Now().UnixNano(), i))
		}
		if err != nil {
			t.Fatalf("advance sequences: %v", err)
		}
	}

	for _, content := range []string{"guide first", "guide second"} {
		if _, err := createComment(t, baseURL, token, map[string]any{
			"content":  content,
			"guide_id": guide.ID,
		}); err != nil {
			t.Fatalf("comment on guide: %v", err)
		}
	}
	for _, content := range []string{"post first", "post second"} {
		if _, err := createComment(t, baseURL, token, map[string]any{
			"content": content,
			"post_id": post.ID,
		}); err != nil {
			t.Fatalf("comment on post: %v", err)
		}
	}

	guideComments, err := listComments(t, baseURL, "guide", guide.ID)
	if err != nil {
		t.Fatalf("list guide comments: %v", err)
	}
	assertContents(t, "guide", guideComments, []string{"guide first", "guide second"})

	postComments, err := listComments(t, baseURL, "post", post.ID)
	if err != nil {
		t.Fatalf("list post comments: %v", err)
	}
	assertContents(t, "post", postComments, []string{"post first", "post second"})
}

func assertContents(t *testing.T, kind string, comments []commentResponse, want []string) {
	t.Helper()

	if len(comments) != len(want) {
		t.Fatalf("expected %d %s comments, got %d", len(want), kind, len(comments))
	}
	for i, content := range want {
		if comments[i].Content != content {
			t.Fatalf("%s comment %d: expected %q, got %q", kind, i, content, comments[i].Content)
		}
	}
}

func TestCommentRejectsBothParents(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	username := fmt.Sprintf("user_%d", time.Now().UnixNano())

	token, err := registerUser(t, baseURL, username, "testpass123!")
	if err != nil {
		t.Fatalf("register user: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"content":  "which one?",
		"guide_id": 1,
		"post_id":  1,
	})
	req, err := http.NewRequest(http.MethodPost, baseURL+"/comments", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		msg, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 400 for double parent, got %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
}

func TestContactSubmission(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)

	body, _ := json.Marshal(map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "How do I exit vim?",
	})
	resp, err := http.Post(baseURL+"/contact", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		t.Fatalf("contact status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
}

type guideResponse struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type postResponse struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type commentResponse struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
}

type authResponse struct {
	Token string `json:"token"`
}

func registerUser(t *testing.T, baseURL, username, password string) (string, error) {
	t.Helper()

	payload := map[string]string{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": password,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err := http.Post(baseURL+"/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("register status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed authResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Token == "" {
		return "", fmt.Errorf("missing token in register response")
	}
	return parsed.Token, nil
}

func promoteUser(username, role string) error {
	cfg := config.LoadConfig()
	dsn := buildPostgresURL(cfg)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = db.ExecContext(ctx, "UPDATE users SET role = $1, updated_at = NOW() WHERE username = $2", role, username)
	return err
}

func createGuide(t *testing.T, baseURL, token string, payload map[string]string) (guideResponse, error) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		return guideResponse{}, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/guides", bytes.NewReader(body))
	if err != nil {
		return guideResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return guideResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return guideResponse{}, fmt.Errorf("create guide status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed guideResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return guideResponse{}, err
	}
	return parsed, nil
}

func createComment(t *testing.T, baseURL, token string, payload map[string]any) (commentResponse, error) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		return commentResponse{}, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/comments", bytes.NewReader(body))
	if err != nil {
		return commentResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return commentResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return commentResponse{}, fmt.Errorf("create comment status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed commentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return commentResponse{}, err
	}
	return parsed, nil
}

func createPost(t *testing.T, baseURL, token, title string) (postResponse, error) {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"title":   title,
		"content": "post body",
		"status":  "published",
		"tags":    []string{"testing"},
	})
	if err != nil {
		return postResponse{}, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/posts", bytes.NewReader(body))
	if err != nil {
		return postResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return postResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return postResponse{}, fmt.Errorf("create post status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed postResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return postResponse{}, err
	}
	return parsed, nil
}

func listComments(t *testing.T, baseURL, kind string, parentID int) ([]commentResponse, error) {
	t.Helper()

	resp, err := http.Get(fmt.Sprintf("%s/comments/%s/%d", baseURL, kind, parentID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("list comments status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed []commentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func getRawBody(t *testing.T, url string) (string, error) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}

func doDelete(t *testing.T, url, token string) error {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func expectStatus(t *testing.T, url string, want int) error {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("expected %d, got %d: %s", want, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func waitForPostgres(ctx context.Context) error {
	cfg := config.LoadConfig()
	dsn := buildPostgresURL(cfg)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres ping timeout: %w", err)
		case <-ticker.C:
		}
	}
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}

func runMigrations(root string) error {
	cfg := config.LoadConfig()
	dsn := buildPostgresURL(cfg)
	migrationsPath := filepath.Join(root, "internal", "db", "migrations")
	migrationsURL := "file://" + migrationsPath

	migrator, err := migrate.New(migrationsURL, dsn)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func buildPostgresURL(cfg config.Config) string {
	sslmode := "disable"
	if cfg.Database.UseSSL {
		sslmode = "require"
	}
	host := fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port)
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		host,
		cfg.Database.DBName,
		sslmode,
	)
}

func startServer() (*server.Server, error) {
	_ = os.Setenv("JWT_SECRET", "test-secret")
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("DB_HOST", "localhost")
	_ = os.Setenv("DB_PORT", "5432")
	_ = os.Setenv("DB_USER", "linuxguide")
	_ = os.Setenv("DB_PASSWORD", "linuxguide")
	_ = os.Setenv("DB_NAME", "linuxguide")
	_ = os.Setenv("DB_USE_SSL", "false")
	_ = os.Setenv("STORAGE_BACKEND", "none")
	_ = os.Setenv("MQ_BACKEND", "none")

	cfg := config.LoadConfig()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	return srv, nil
}

func dockerCompose(ctx context.Context, root string, args ...string) error {
	composeFile := filepath.Join(root, "development", "docker-compose.yml")
	baseArgs := append([]string{"compose", "-f", composeFile}, args...)
	cmd := exec.CommandContext(ctx, "docker", baseArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
