package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

func newCreds(t *testing.T) *session.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := session.NewStore(filepath.Join(dir, "token.json"), filepath.Join(dir, "user.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestBearerHeaderAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	creds := newCreds(t)
	if err := creds.SaveAuth("tok-abc", model.User{ID: "u1"}); err != nil {
		t.Fatal(err)
	}
	client := NewClient(srv.URL, creds, nil)
	if _, err := client.ListProjects(context.Background()); err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"token":"t","user":{"id":"u1","name":"Ada"}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newCreds(t), nil)
	res, err := client.Login(context.Background(), service.Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("anonymous request must not carry a header, got %q", gotAuth)
	}
	if res.Token != "t" || res.User.Name != "Ada" {
		t.Fatalf("unexpected auth result: %+v", res)
	}
}

func TestUnauthorizedClearsSessionAndFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := newCreds(t)
	if err := creds.SaveAuth("expired", model.User{ID: "u1"}); err != nil {
		t.Fatal(err)
	}
	hookFired := false
	client := NewClient(srv.URL, creds, func() { hookFired = true })

	_, err := client.ListProjects(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if creds.IsAuthenticated() {
		t.Fatal("expected credentials cleared after 401")
	}
	if !hookFired {
		t.Fatal("expected OnUnauthorized hook to fire")
	}
}

func TestServerErrorMessagePassedThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"name is required"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newCreds(t), nil)
	_, err := client.CreateProject(context.Background(), service.ProjectInput{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "name is required" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestGenericMessageWhenBodyUnstructured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newCreds(t), nil)
	err := client.DeleteProject(context.Background(), "p1")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Error() != "request failed with status 500" {
		t.Fatalf("unexpected message: %q", apiErr.Error())
	}
}

func TestTaskPaths(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"data":{"id":"t1","title":"x","status":"pending","priority":"low","project":"p1"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newCreds(t), nil)
	if _, err := client.UpdateTask(context.Background(), "p1", "t1", service.TaskInput{Status: "completed"}); err != nil {
		t.Fatalf("update task: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/projects/p1/tasks/t1" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestNetworkFailureIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection refused

	client := NewClient(srv.URL, newCreds(t), nil)
	_, err := client.ListProjects(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure must not be a server error: %v", err)
	}
}
