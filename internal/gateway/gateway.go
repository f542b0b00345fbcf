// Package gateway translates local calls into requests against the remote
// employee API. It is stateless: no retries, caching or batching.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/staffdesk/internal/client"
	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// EmployeeGateway is the set of remote employee operations.
type EmployeeGateway interface {
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, fields models.EmployeeFields) (models.Employee, error)
	Update(ctx context.Context, id int, fields models.EmployeeFields) (models.Employee, error)
	Delete(ctx context.Context, id int) error
}

// UserLister fetches the accounts used by the login check.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Gateway talks to the REST API rooted at baseURL.
type Gateway struct {
	client  *http.Client
	baseURL string
}

// New returns a gateway for baseURL, e.g. "http://localhost:4000".
func New(httpClient *http.Client, baseURL string) *Gateway {
	return &Gateway{client: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the API root this gateway talks to.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// ListUsers fetches every user: GET /users.
func (g *Gateway) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := g.do(ctx, "users.list", http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// List fetches every employee: GET /employees.
func (g *Gateway) List(ctx context.Context) ([]models.Employee, error) {
	employees := []models.Employee{}
	if err := g.do(ctx, "employees.list", http.MethodGet, "/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// Create adds an employee: POST /employees.
func (g *Gateway) Create(ctx context.Context, fields models.EmployeeFields) (models.Employee, error) {
	var created models.Employee
	if err := g.do(ctx, "employees.create", http.MethodPost, "/employees", fields, &created); err != nil {
		return models.Employee{}, err
	}
	return created, nil
}

// Update replaces an employee's fields: PUT /employees/{id}.
func (g *Gateway) Update(ctx context.Context, id int, fields models.EmployeeFields) (models.Employee, error) {
	var updated models.Employee
	if err := g.do(ctx, "employees.update", http.MethodPut, employeePath(id), fields, &updated); err != nil {
		return models.Employee{}, err
	}
	return updated, nil
}

// Delete removes an employee: DELETE /employees/{id}.
func (g *Gateway) Delete(ctx context.Context, id int) error {
	return g.do(ctx, "employees.delete", http.MethodDelete, employeePath(id), nil, nil)
}

func employeePath(id int) string {
	return "/employees/" + url.PathEscape(strconv.Itoa(id))
}

// do performs one request. out may be nil when the body is irrelevant.
func (g *Gateway) do(ctx context.Context, opn, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return requestError(opn, fmt.Errorf("failed to encode request body: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(client.WithOperation(ctx, opn), method, g.baseURL+path, body)
	if err != nil {
		return requestError(opn, fmt.Errorf("failed to create new request %s: %w", path, err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", models.UserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return transportError(opn, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(opn, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(opn, resp.StatusCode, payload)
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(payload, out); err != nil {
		return decodeError(opn, err)
	}

	return nil
}
