package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Dan9191/mfdash/internal/config"
	"github.com/Dan9191/mfdash/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Client talks to the microfinance and counseling REST backend
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	log     *logrus.Logger
}

// GenerateResult is the backend reply to a match generation request
type GenerateResult struct {
	Message      string `json:"message"`
	MatchesCount int    `json:"matches_count"`
}

type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewClient initializes a new backend client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.APIURL,
		token:   cfg.APIToken,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		log: log,
	}
}

// Fetch loads the full collection of kind. param is the user id for
// per-user kinds.
func (c *Client) Fetch(ctx context.Context, kind models.Kind, param string) (models.Collection, error) {
	path, err := PathFor(kind, param)
	if err != nil {
		return nil, err
	}

	body, err := c.sendRequest(ctx, http.MethodGet, path, uuid.NewString(), nil)
	if err != nil {
		return nil, err
	}

	var coll models.Collection
	if err := decode(body, &coll); err != nil {
		return nil, &MalformedResponseError{URL: c.baseURL + path, Err: err}
	}
	if coll == nil {
		coll = models.Collection{}
	}

	c.log.WithFields(logrus.Fields{"kind": kind, "count": len(coll)}).Debug("Fetched collection")
	return coll, nil
}

// SetLoanStatus updates a loan's status and returns the server message
func (c *Client) SetLoanStatus(ctx context.Context, requestID, loanID, status string) (string, error) {
	path := fmt.Sprintf("/microfinance/loans/%s/status", url.PathEscape(loanID))
	body, err := c.sendRequest(ctx, http.MethodPut, path, requestID, map[string]string{"status": status})
	if err != nil {
		return "", err
	}
	return c.message(path, body)
}

// ApplyForJob submits a job application and returns the server message
func (c *Client) ApplyForJob(ctx context.Context, requestID, userID, jobID string) (string, error) {
	path := "/counselor/applications/apply"
	body, err := c.sendRequest(ctx, http.MethodPost, path, requestID, map[string]string{
		"user_id": userID,
		"job_id":  jobID,
	})
	if err != nil {
		return "", err
	}
	return c.message(path, body)
}

// GenerateMatches asks the backend to recompute a user's job matches
func (c *Client) GenerateMatches(ctx context.Context, requestID, userID string) (GenerateResult, error) {
	path := "/counselor/matches/generate/" + url.PathEscape(userID)
	body, err := c.sendRequest(ctx, http.MethodPost, path, requestID, nil)
	if err != nil {
		return GenerateResult{}, err
	}

	var res GenerateResult
	if len(bytes.TrimSpace(body)) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return GenerateResult{}, &MalformedResponseError{URL: c.baseURL + path, Err: err}
	}
	return res, nil
}

func (c *Client) message(path string, body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}
	var msg messageBody
	if err := json.Unmarshal(body, &msg); err != nil {
		return "", &MalformedResponseError{URL: c.baseURL + path, Err: err}
	}
	return msg.Message, nil
}

// sendRequest performs one request and returns the raw 2xx body
func (c *Client) sendRequest(ctx context.Context, method, path, requestID string, payload any) ([]byte, error) {
	target := c.baseURL + path

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}

	c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": requestID,
	}).Debug("Backend response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, body)
	}
	return body, nil
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var msg messageBody
	if err := json.Unmarshal(body, &msg); err == nil {
		switch {
		case msg.Message != "":
			apiErr.Message = msg.Message
		case msg.Error != "":
			apiErr.Message = msg.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Unstructured = true
	}
	return apiErr
}

func decode(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
