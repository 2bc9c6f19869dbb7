// Package client keeps a local cache of one user's tasks consistent with
// the task API, and surfaces per-operation success/failure feedback the
// way an interactive front-end needs it: a busy flag while a call is in
// flight and a single-slot message describing the last outcome.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Task mirrors the server's task JSON.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	UserID      string `json:"userId"`
	Version     int    `json:"version"`
	CreatedAt   string `json:"createdAt"`
}

// NewTask is the input to AddTask. Title and an owning user are required;
// the user falls back to the store's session identity when unset.
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
}

// Patch names the fields an update replaces. Nil fields are left alone.
// Version, when set, asks the server to reject a stale write.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Version     *int    `json:"version,omitempty"`
}

// Store is the client-side state container. All methods are safe for
// concurrent use, but overlapping mutations resolve in the order their
// responses arrive and each applies against the list snapshot captured
// when the call began, so siblings can overwrite each other's effect.
// That matches what a browser tab does against this API.
type Store struct {
	baseURL string
	httpc   *http.Client
	now     func() time.Time

	mu       sync.Mutex
	userID   string
	tasks    []Task
	busy     bool
	feedback *Feedback
}

func New(baseURL string) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		now:     time.Now,
	}
}

/* ===================== Session identity ====================== */

func (s *Store) SetUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

// ClearUser forgets the session identity and drops the cached list.
func (s *Store) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.tasks = nil
}

func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

/* ===================== Accessors ====================== */

// Tasks returns a copy of the cached list.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

/* ===================== Operations ====================== */

// FetchTasks replaces the cached list wholesale with the server's set for
// userID. On failure the previous list is left untouched.
func (s *Store) FetchTasks(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		s.setFeedback(FeedbackError, "Failed to fetch tasks.")
		return errors.New("client: user id required")
	}
	s.beginOp()
	defer s.endOp()

	var fetched []Task
	if err := s.doJSON(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(userID), nil, &fetched); err != nil {
		s.setFeedback(FeedbackError, "Failed to fetch tasks.")
		return err
	}

	s.mu.Lock()
	s.tasks = fetched
	s.mu.Unlock()
	s.setFeedback(FeedbackSuccess, "Tasks fetched successfully!")
	return nil
}

// AddTask creates the task server-side and appends the returned record
// (carrying the server-assigned id and timestamp) to the cached list.
// The list is not re-sorted or re-fetched.
func (s *Store) AddTask(ctx context.Context, t NewTask) (*Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		s.setFeedback(FeedbackError, "Task title is required.")
		return nil, errors.New("client: title required")
	}
	if t.UserID == "" {
		t.UserID = s.UserID()
	}
	if t.UserID == "" {
		s.setFeedback(FeedbackError, "Failed to add task.")
		return nil, errors.New("client: owning user required")
	}
	s.beginOp()
	defer s.endOp()

	snapshot := s.Tasks()

	var created Task
	if err := s.doJSON(ctx, http.MethodPost, "/api/tasks", t, &created); err != nil {
		s.setFeedback(FeedbackError, "Failed to add task.")
		return nil, err
	}

	s.mu.Lock()
	s.tasks = append(snapshot, created)
	s.mu.Unlock()
	s.setFeedback(FeedbackSuccess, "Task added successfully!")
	return &created, nil
}

// UpdateTask sends a merge patch and swaps the matching cached entry for
// the server-returned record. An unknown id surfaces the server's 404 as
// error feedback; the cache is untouched on any failure.
func (s *Store) UpdateTask(ctx context.Context, id string, p Patch) (*Task, error) {
	s.beginOp()
	defer s.endOp()

	snapshot := s.Tasks()

	var updated Task
	if err := s.doJSON(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), p, &updated); err != nil {
		s.setFeedback(FeedbackError, "Failed to update task.")
		return nil, err
	}

	for i := range snapshot {
		if snapshot[i].ID == id {
			snapshot[i] = updated
		}
	}
	s.mu.Lock()
	s.tasks = snapshot
	s.mu.Unlock()
	s.setFeedback(FeedbackSuccess, "Task updated successfully!")
	return &updated, nil
}

// DeleteTask removes the task server-side, then drops the cached entry.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.deleteTask(ctx, id, nil)
}

// DeleteTaskIfVersion deletes only if the server still holds the given
// version, rejecting the call when another writer got there first.
func (s *Store) DeleteTaskIfVersion(ctx context.Context, id string, version int) error {
	return s.deleteTask(ctx, id, &version)
}

func (s *Store) deleteTask(ctx context.Context, id string, version *int) error {
	s.beginOp()
	defer s.endOp()

	snapshot := s.Tasks()

	path := "/api/tasks/" + url.PathEscape(id)
	var hdr http.Header
	if version != nil {
		hdr = http.Header{"If-Version": []string{fmt.Sprint(*version)}}
	}
	if err := s.do(ctx, http.MethodDelete, path, nil, nil, hdr); err != nil {
		s.setFeedback(FeedbackError, "Failed to delete task.")
		return err
	}

	kept := snapshot[:0]
	for _, t := range snapshot {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.mu.Lock()
	s.tasks = kept
	s.mu.Unlock()
	s.setFeedback(FeedbackSuccess, "Task deleted successfully!")
	return nil
}

/* ===================== Busy flag ====================== */

func (s *Store) beginOp() {
	s.mu.Lock()
	s.busy = true
	s.mu.Unlock()
}

// endOp runs deferred so the flag never sticks after a failed call.
func (s *Store) endOp() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

/* ===================== HTTP plumbing ====================== */

func (s *Store) doJSON(ctx context.Context, method, path string, body, out any) error {
	return s.do(ctx, method, path, body, out, nil)
}

func (s *Store) do(ctx context.Context, method, path string, body, out any, hdr http.Header) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := s.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Message)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
