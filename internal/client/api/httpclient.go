package api

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
	"time"

	"github.com/google/uuid"

	"github.com/kgarud95/learningx-cli/internal/client/models"
	"github.com/kgarud95/learningx-cli/internal/common"
	"github.com/kgarud95/learningx-cli/internal/logging"
)

// HTTPClient implements Client over the JSON REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.token = ""
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// tokenResponse is the shared shape of the login, register, and session
// exchange replies (a cross-endpoint contract on the API side).
type tokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        models.Identity `json:"user"`
}

// errorResponse is the API failure payload convention.
type errorResponse struct {
	Detail string `json:"detail"`
}

// do performs one JSON request/response round trip. body may be nil; out may
// be nil when the caller ignores the response payload. fallback is the
// operation-specific message used when a rejected request carries no detail.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any, fallback string) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode, Detail: fallback}
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Detail != "" {
			apiErr.Detail = er.Detail
		}
		c.log.Warn(ctx, "request rejected",
			"method", method, "path", path, "request_id", requestID,
			"status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/", nil, nil, nil, "Server check failed")
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Identity, error) {
	var id models.Identity
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &id, "Failed to load profile"); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password string) (string, *models.Identity, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp, "Login failed"); err != nil {
		return "", nil, err
	}
	return resp.AccessToken, &resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, email string, password string, name string) (string, *models.Identity, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}{Email: email, Password: password, Name: name}

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &resp, "Registration failed"); err != nil {
		return "", nil, err
	}
	return resp.AccessToken, &resp.User, nil
}

// ExchangeSession completes the delegated-auth handshake: the session id
// received from the external provider is traded for a regular bearer token.
// The session id travels as a query parameter per the API contract.
func (c *HTTPClient) ExchangeSession(ctx context.Context, sessionID string) (string, *models.Identity, error) {
	q := url.Values{"session_id": {sessionID}}

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/emergent/session", q, nil, &resp, "Authentication failed"); err != nil {
		return "", nil, err
	}
	return resp.AccessToken, &resp.User, nil
}

func (c *HTTPClient) Courses(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Level != "" {
		q.Set("level", filter.Level)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Skip > 0 {
		q.Set("skip", strconv.Itoa(filter.Skip))
	}

	var courses []models.Course
	if err := c.do(ctx, http.MethodGet, "/api/courses", q, nil, &courses, "Failed to load courses"); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *HTTPClient) Course(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := c.do(ctx, http.MethodGet, "/api/courses/"+url.PathEscape(id), nil, nil, &course, "Failed to load course"); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *HTTPClient) CreateCourse(ctx context.Context, draft *models.CourseDraft) (*models.Course, error) {
	var course models.Course
	if err := c.do(ctx, http.MethodPost, "/api/courses", nil, draft, &course, "Failed to create course"); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *HTTPClient) Enrollments(ctx context.Context) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := c.do(ctx, http.MethodGet, "/api/enrollments", nil, nil, &enrollments, "Failed to load enrollments"); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (c *HTTPClient) Enroll(ctx context.Context, courseID string) (*models.Enrollment, error) {
	req := struct {
		CourseID string `json:"course_id"`
	}{CourseID: courseID}

	var enrollment models.Enrollment
	if err := c.do(ctx, http.MethodPost, "/api/enrollments", nil, req, &enrollment, "Enrollment failed"); err != nil {
		return nil, err
	}
	return &enrollment, nil
}
