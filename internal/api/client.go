// Package api implements service.Service against the taskboard REST API.
// It is the sole component performing network I/O and credential attachment.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

// RequestTimeout bounds every API call.
const RequestTimeout = 10 * time.Second

// Client is the request gateway. Every outgoing request carries
// `Authorization: Bearer <token>` when the session holds a token; a 401 on
// any response clears the session and fires the OnUnauthorized hook before
// the caller sees ErrUnauthorized.
type Client struct {
	baseURL        string
	http           *http.Client
	creds          oauth2.TokenSource
	clearCreds     func() error
	onUnauthorized func()
}

// Credentials is the session dependency the gateway needs: a token source
// for attachment and a way to destroy the session on 401.
type Credentials interface {
	oauth2.TokenSource
	Clear() error
}

// NewClient builds a gateway over baseURL. onUnauthorized may be nil; when
// set it runs once per 401 response, after the credentials are cleared.
func NewClient(baseURL string, creds Credentials, onUnauthorized func()) *Client {
	base := strings.TrimRight(baseURL, "/")
	transport := &bearerTransport{
		src:  creds,
		auth: &oauth2.Transport{Source: creds, Base: http.DefaultTransport},
		base: http.DefaultTransport,
	}
	return &Client{
		baseURL:        base,
		http:           &http.Client{Transport: transport},
		creds:          creds,
		clearCreds:     creds.Clear,
		onUnauthorized: onUnauthorized,
	}
}

// bearerTransport attaches the bearer header through oauth2.Transport when a
// token is present and sends the request bare otherwise.
type bearerTransport struct {
	src  oauth2.TokenSource
	auth *oauth2.Transport
	base http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if _, err := t.src.Token(); err != nil {
		return t.base.RoundTrip(req)
	}
	return t.auth.RoundTrip(req)
}

// All responses arrive as `{ "data": <payload> }`.
type dataEnvelope struct {
	Data any `json:"data"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.clearCreds()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		var msg messageEnvelope
		if json.NewDecoder(resp.Body).Decode(&msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	env := dataEnvelope{Data: out}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, creds service.Credentials) (service.AuthResult, error) {
	var out service.AuthResult
	err := c.send(ctx, http.MethodPost, "/auth/login", creds, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, reg service.Registration) (service.AuthResult, error) {
	var out service.AuthResult
	err := c.send(ctx, http.MethodPost, "/auth/register", reg, &out)
	return out, err
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, 0)
	err := c.send(ctx, http.MethodGet, "/auth/users", nil, &out)
	return out, err
}

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	out := make([]model.Project, 0)
	err := c.send(ctx, http.MethodGet, "/projects", nil, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id string) (model.Project, error) {
	var out model.Project
	err := c.send(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, in service.ProjectInput) (model.Project, error) {
	var out model.Project
	err := c.send(ctx, http.MethodPost, "/projects", in, &out)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, id string, in service.ProjectInput) (model.Project, error) {
	var out model.Project
	err := c.send(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), in, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	out := make([]model.Task, 0)
	err := c.send(ctx, http.MethodGet, taskPath(projectID, ""), nil, &out)
	return out, err
}

func (c *Client) GetTask(ctx context.Context, projectID, taskID string) (model.Task, error) {
	var out model.Task
	err := c.send(ctx, http.MethodGet, taskPath(projectID, taskID), nil, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, projectID string, in service.TaskInput) (model.Task, error) {
	var out model.Task
	err := c.send(ctx, http.MethodPost, taskPath(projectID, ""), in, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, projectID, taskID string, in service.TaskInput) (model.Task, error) {
	var out model.Task
	err := c.send(ctx, http.MethodPut, taskPath(projectID, taskID), in, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	return c.send(ctx, http.MethodDelete, taskPath(projectID, taskID), nil, nil)
}

func taskPath(projectID, taskID string) string {
	path := "/projects/" + url.PathEscape(projectID) + "/tasks"
	if taskID != "" {
		path += "/" + url.PathEscape(taskID)
	}
	return path
}

var _ service.Service = (*Client)(nil)
