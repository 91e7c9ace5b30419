package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// defaultReportName is used when the server omits a disposition filename
const defaultReportName = "weekly-report.pdf"

// Client talks to the housekeeping API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new housekeeping API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope is the JSON wrapper every non-binary endpoint responds with
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

// remoteErr turns a failed envelope into a displayable error
func (e *envelope) remoteErr(fallback string) error {
	msg := e.Message
	if msg == "" {
		msg = e.Error
	}
	if msg == "" {
		msg = fallback
	}
	return &RemoteError{Message: msg}
}

// do executes a request and decodes the response envelope. The API reports
// failures in the body (success:false / error) even on non-200 statuses,
// so the body is decoded regardless of the status code.
func (c *Client) do(method, path, token string, body io.Reader, contentType string) (*envelope, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("unmarshal response (HTTP %d): %w", resp.StatusCode, err)
	}

	return &env, nil
}

// postJSON marshals v and executes a JSON POST
func (c *Client) postJSON(path, token string, v interface{}) (*envelope, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return c.do(http.MethodPost, path, token, bytes.NewReader(body), "application/json")
}

// Login exchanges credentials for a token
func (c *Client) Login(email, password string) (string, error) {
	env, err := c.postJSON("/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", env.remoteErr("Login failed.")
	}
	return env.Token, nil
}

// Register creates a new account and returns the server's message
func (c *Client) Register(req RegisterRequest) (string, error) {
	env, err := c.postJSON("/register", "", req)
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", env.remoteErr("Registration failed.")
	}
	return env.Message, nil
}

// Hospitals fetches the registration hospital lookup
func (c *Client) Hospitals() ([]Hospital, error) {
	env, err := c.do(http.MethodGet, "/hospitals", "", nil, "")
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.remoteErr("Failed to load hospitals.")
	}
	var hospitals []Hospital
	if err := json.Unmarshal(env.Data, &hospitals); err != nil {
		return nil, fmt.Errorf("unmarshal hospitals: %w", err)
	}
	return hospitals, nil
}

// Tasks fetches the cleaner's assigned tasks
func (c *Client) Tasks(userID string) ([]Task, error) {
	env, err := c.do(http.MethodGet, "/tasks/"+userID, "", nil, "")
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.remoteErr("Failed to load tasks.")
	}
	var tasks []Task
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}
	return tasks, nil
}

// SubmitRoom uploads an after-cleaning photo for verification
func (c *Client) SubmitRoom(roomID, photoPath, cleanerID string) error {
	file, err := os.Open(photoPath)
	if err != nil {
		return fmt.Errorf("open photo: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("room_id", roomID); err != nil {
		return fmt.Errorf("write room_id: %w", err)
	}
	if err := w.WriteField("cleaner_id", cleanerID); err != nil {
		return fmt.Errorf("write cleaner_id: %w", err)
	}
	part, err := w.CreateFormFile("after_photo", filepath.Base(photoPath))
	if err != nil {
		return fmt.Errorf("create photo part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy photo: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	env, err := c.do(http.MethodPost, "/verify_room", "", &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	if !env.Success {
		return env.remoteErr("Submission failed.")
	}
	return nil
}

// Cleaners fetches the assignable cleaners for the manager's hospital
func (c *Client) Cleaners(token string) ([]Cleaner, error) {
	env, err := c.do(http.MethodGet, "/cleaners", token, nil, "")
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.remoteErr("No cleaners found")
	}
	var cleaners []Cleaner
	if err := json.Unmarshal(env.Data, &cleaners); err != nil {
		return nil, fmt.Errorf("unmarshal cleaners: %w", err)
	}
	return cleaners, nil
}

// AssignTask creates a cleaning task and returns the server's message
func (c *Client) AssignTask(req AssignTaskRequest) (string, error) {
	env, err := c.postJSON("/assign_task", "", req)
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", env.remoteErr("Failed to assign task.")
	}
	return env.Message, nil
}

// PendingRecords fetches the manager's pending approval queue
func (c *Client) PendingRecords(token string) ([]ApprovalRecord, error) {
	env, err := c.do(http.MethodGet, "/dashboard", token, nil, "")
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.remoteErr("Failed to load approvals.")
	}
	var records []ApprovalRecord
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal approvals: %w", err)
	}
	return records, nil
}

// Decide approves a record or sends it back for rework
func (c *Client) Decide(token string, recordID int, status DecisionStatus) (string, error) {
	env, err := c.postJSON("/approve", token, map[string]interface{}{
		"record_id":  recordID,
		"new_status": string(status),
	})
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", env.remoteErr("Failed to update record.")
	}
	return env.Message, nil
}

// WeeklyReport downloads the weekly report. The filename comes from the
// Content-Disposition header when present, else a fixed default.
func (c *Client) WeeklyReport(token string) (string, []byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/report/weekly", nil)
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var env envelope
		if err := json.Unmarshal(body, &env); err == nil {
			return "", nil, env.remoteErr("Failed to generate report.")
		}
		return "", nil, fmt.Errorf("HTTP %d downloading report", resp.StatusCode)
	}

	filename := defaultReportName
	if disposition := resp.Header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := params["filename"]; name != "" {
				filename = name
			}
		}
	}

	return filename, body, nil
}
