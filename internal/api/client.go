package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/RohitValiveti/Fitness-Tracker/internal/model"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 12 * time.Second
)

// Client is the session-authenticated data-access layer. Every operation
// validates its input, attaches the current credential when the endpoint is
// private, issues the call under a deadline, and normalizes the payload into
// the entity model. No raw transport or parse error escapes untyped.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Session    *SessionManager

	refreshMu sync.Mutex
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: timeout,
		Session: NewSessionManager(),
	}
}

func (c *Client) base() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

func (c *Client) sess() *SessionManager {
	if c.Session == nil {
		c.Session = NewSessionManager()
	}
	return c.Session
}

// call describes one request: op names the operation in errors, entity and
// entityID name the resource a 404 refers to.
type call struct {
	op       string
	method   string
	path     string
	body     any
	private  bool
	entity   string
	entityID int64
}

// doJSON runs a call end to end. Private calls that find the session expired
// or rejected get exactly one silent refresh via the update token before an
// AuthError surfaces; the retry loop is bounded at two attempts.
func (c *Client) doJSON(ctx context.Context, cl call) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	for attempt := 0; ; attempt++ {
		var reader io.Reader
		if cl.body != nil {
			payload, err := json.Marshal(cl.body)
			if err != nil {
				return nil, &model.TransportError{Op: cl.op, Err: fmt.Errorf("marshal request: %w", err)}
			}
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, cl.method, c.base()+cl.path, reader)
		if err != nil {
			return nil, &model.TransportError{Op: cl.op, Err: err}
		}
		if cl.body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if cl.private {
			if err := c.sess().Attach(req); err != nil {
				if attempt == 0 && c.refresh(ctx) == nil {
					continue
				}
				return nil, err
			}
		}

		raw, status, err := c.send(req, cl.op)
		if err != nil {
			return nil, err
		}
		if status >= 200 && status < 300 {
			return raw, nil
		}
		if cl.private && attempt == 0 && isAuthStatus(status, errorMessage(raw)) {
			c.sess().Invalidate()
			if err := c.refresh(ctx); err != nil {
				return nil, err
			}
			continue
		}
		return nil, classify(cl, status, errorMessage(raw))
	}
}

func (c *Client) send(req *http.Request, op string) (map[string]any, int, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, 0, transportErr(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, transportErr(op, err)
	}
	raw := map[string]any{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return nil, 0, &model.ShapeError{Entity: op, Field: "(body)", Reason: "is not a JSON object"}
			}
			raw = map[string]any{}
		}
	}
	return raw, resp.StatusCode, nil
}

func transportErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &model.TimeoutError{Op: op}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &model.TimeoutError{Op: op}
	}
	return &model.TransportError{Op: op, Err: err}
}

func errorMessage(raw map[string]any) string {
	if raw == nil {
		return ""
	}
	if msg, ok := raw["error"].(string); ok {
		return msg
	}
	return ""
}

func isAuthStatus(status int, message string) bool {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return true
	}
	// The original server answers 400 for credential problems; the message
	// is the only signal.
	return status == http.StatusBadRequest && strings.Contains(strings.ToLower(message), "token")
}

// classify maps an error response onto the taxonomy. Status is the primary
// signal; for the legacy flat-400 server the body message breaks ties.
func classify(cl call, status int, message string) error {
	entity := cl.entity
	if entity == "" {
		entity = cl.op
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &model.AuthError{Reason: nonEmpty(message, "request rejected")}
	case http.StatusNotFound:
		return &model.NotFoundError{Entity: entity, ID: cl.entityID}
	case http.StatusConflict:
		return &model.ConflictError{Resource: entity}
	case http.StatusBadRequest:
		lower := strings.ToLower(message)
		switch {
		case strings.Contains(lower, "token"):
			return &model.AuthError{Reason: message}
		case strings.Contains(lower, "not exist"), strings.Contains(lower, "not found"), strings.Contains(lower, "not assocated"), strings.Contains(lower, "not associated"):
			return &model.NotFoundError{Entity: entity, ID: cl.entityID}
		case strings.Contains(lower, "already"):
			return &model.ConflictError{Resource: entity}
		default:
			return &model.ValidationError{Field: entity, Reason: nonEmpty(message, "rejected by server")}
		}
	default:
		return &model.TransportError{Op: cl.op, Err: fmt.Errorf("unexpected status %d: %s", status, nonEmpty(message, "no error body"))}
	}
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// refresh performs the one-shot silent re-authentication with the update
// token. The mutex makes concurrent expired observers wait on a single
// refresh; a waiter that arrives after it finished sees the restored session
// and returns immediately.
func (c *Client) refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if c.sess().Valid() {
		return nil
	}
	token, ok := c.sess().UpdateToken()
	if !ok {
		return &model.AuthError{Reason: "no update token held"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base()+"/session", nil)
	if err != nil {
		return &model.TransportError{Op: "refresh session", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	raw, status, err := c.send(req, "refresh session")
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &model.AuthError{Reason: nonEmpty(errorMessage(raw), "session refresh rejected")}
	}
	session, err := normalizeSession(raw)
	if err != nil {
		return err
	}
	c.sess().Establish(session)
	return nil
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return &model.ValidationError{Field: "email", Reason: "not a valid address"}
	}
	if len(password) < 8 {
		return &model.ValidationError{Field: "password", Reason: "too short (min 8 characters)"}
	}
	return nil
}

// Register creates an account and establishes its first session. Email is
// the login identifier, username is display-only. Registering an email twice
// is a ConflictError, not a no-op. The server may embed a reduced user
// payload alongside the credential triple; when it does not, the returned
// user is nil.
func (c *Client) Register(ctx context.Context, email, password, username string) (model.Session, *model.LoginUser, error) {
	if err := validateCredentials(email, password); err != nil {
		return model.Session{}, nil, err
	}
	if len(strings.TrimSpace(username)) < 3 {
		return model.Session{}, nil, &model.ValidationError{Field: "username", Reason: "too short (min 3 characters)"}
	}
	raw, err := c.doJSON(ctx, call{
		op:     "register",
		method: http.MethodPost,
		path:   "/register",
		body: map[string]string{
			"email":    strings.TrimSpace(email),
			"password": password,
			"username": strings.TrimSpace(username),
		},
		entity: "account",
	})
	if err != nil {
		return model.Session{}, nil, err
	}
	return c.establishFrom(raw)
}

// Login authenticates with email and password. Email is the canonical login
// identifier; usernames are display-only.
func (c *Client) Login(ctx context.Context, email, password string) (model.Session, *model.LoginUser, error) {
	if err := validateCredentials(email, password); err != nil {
		return model.Session{}, nil, err
	}
	raw, err := c.doJSON(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/login",
		body:   map[string]string{"email": strings.TrimSpace(email), "password": password},
		entity: "account",
	})
	if err != nil {
		return model.Session{}, nil, err
	}
	return c.establishFrom(raw)
}

func (c *Client) establishFrom(raw map[string]any) (model.Session, *model.LoginUser, error) {
	session, err := normalizeSession(raw)
	if err != nil {
		return model.Session{}, nil, err
	}
	c.sess().Establish(session)

	var user *model.LoginUser
	if embedded, ok := raw["user"].(map[string]any); ok {
		u, err := normalizeLoginUser(embedded)
		if err != nil {
			return model.Session{}, nil, err
		}
		user = &u
	}
	return session, user, nil
}

// Logout invalidates the server-side session and drops the local credential
// regardless of what the server answered.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.doJSON(ctx, call{
		op:      "logout",
		method:  http.MethodPost,
		path:    "/logout",
		private: true,
		entity:  "session",
	})
	c.sess().Clear()
	return err
}

// RefreshSession forces the silent re-authentication path and returns the
// new credential triple.
func (c *Client) RefreshSession(ctx context.Context) (model.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()
	c.sess().Invalidate()
	if err := c.refresh(ctx); err != nil {
		return model.Session{}, err
	}
	return c.sess().Session(), nil
}

// FetchUser returns the strict, owner-only projection. Requires a valid
// credential. The credential fields the endpoint omits are filled in from
// the session manager, keeping the authenticated-view invariant.
func (c *Client) FetchUser(ctx context.Context, userID int64) (model.User, error) {
	raw, err := c.doJSON(ctx, call{
		op:       "fetch user",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/users/%d", userID),
		private:  true,
		entity:   "user",
		entityID: userID,
	})
	if err != nil {
		return model.User{}, err
	}
	user, err := normalizeUser(raw)
	if err != nil {
		return model.User{}, err
	}
	if user.SessionToken == "" {
		s := c.sess().Session()
		user.SessionToken = s.Token
		user.UpdateToken = s.UpdateToken
		user.SessionExpiration = s.Expiration
	}
	return user, nil
}

// FetchPublicUser returns the reduced projection from the public endpoint.
// Credential fields are stripped even if the server erroneously includes
// them.
func (c *Client) FetchPublicUser(ctx context.Context, userID int64) (model.LoginUser, error) {
	raw, err := c.doJSON(ctx, call{
		op:       "fetch public user",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/pub/users/%d", userID),
		entity:   "user",
		entityID: userID,
	})
	if err != nil {
		return model.LoginUser{}, err
	}
	return normalizeLoginUser(raw)
}

// ResolveUser degrades instead of failing: with authenticated set and a
// usable credential it reads the private endpoint, otherwise it falls back
// to the public reduced projection.
func (c *Client) ResolveUser(ctx context.Context, userID int64, authenticated bool) (model.LoginUser, error) {
	if authenticated && c.sess().Valid() {
		user, err := c.FetchUser(ctx, userID)
		if err == nil {
			return user.Public(), nil
		}
		var authErr *model.AuthError
		if !errors.As(err, &authErr) {
			return model.LoginUser{}, err
		}
	}
	return c.FetchPublicUser(ctx, userID)
}

// FetchWorkout returns the given user's workout. A dangling reference is a
// NotFoundError, never a crash or a half-built entity.
func (c *Client) FetchWorkout(ctx context.Context, userID int64) (model.Workout, error) {
	raw, err := c.doJSON(ctx, call{
		op:       "fetch workout",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/workouts/%d", userID),
		private:  true,
		entity:   "workout",
		entityID: userID,
	})
	if err != nil {
		return model.Workout{}, err
	}
	return normalizeWorkout(raw)
}

// FetchWorkouts lists all workouts. The list normalizes strictly: one bad
// element fails the whole call.
func (c *Client) FetchWorkouts(ctx context.Context) ([]model.Workout, error) {
	raw, err := c.doJSON(ctx, call{
		op:      "list workouts",
		method:  http.MethodGet,
		path:    "/workouts",
		private: true,
		entity:  "workout",
	})
	if err != nil {
		return nil, err
	}
	items, err := collection("workout list", raw, "workouts")
	if err != nil {
		return nil, err
	}
	return normalizeList(items, normalizeWorkout)
}

// ListUsers returns every registered account in reduced form.
func (c *Client) ListUsers(ctx context.Context) ([]model.Friend, error) {
	raw, err := c.doJSON(ctx, call{
		op:     "list users",
		method: http.MethodGet,
		path:   "/admin/users",
		entity: "user",
	})
	if err != nil {
		return nil, err
	}
	items, err := collection("user list", raw, "users")
	if err != nil {
		return nil, err
	}
	return normalizeList(items, normalizeFriend)
}

func (c *Client) CreateWorkout(ctx context.Context, muscleGroup string) (model.Workout, error) {
	if strings.TrimSpace(muscleGroup) == "" {
		return model.Workout{}, &model.ValidationError{Field: "muscleGroup", Reason: "is required"}
	}
	raw, err := c.doJSON(ctx, call{
		op:      "create workout",
		method:  http.MethodPost,
		path:    "/workouts",
		body:    map[string]string{"muscle_group": strings.TrimSpace(muscleGroup)},
		private: true,
		entity:  "workout",
	})
	if err != nil {
		return model.Workout{}, err
	}
	return normalizeWorkout(raw)
}

// CreateExercise appends an exercise to a workout; workoutID 0 creates it
// unassigned.
func (c *Client) CreateExercise(ctx context.Context, workoutID int64, name, muscle string) (model.Exercise, error) {
	if strings.TrimSpace(name) == "" {
		return model.Exercise{}, &model.ValidationError{Field: "exerciseName", Reason: "is required"}
	}
	if strings.TrimSpace(muscle) == "" {
		return model.Exercise{}, &model.ValidationError{Field: "muscle", Reason: "is required"}
	}
	path := "/exercises"
	if workoutID > 0 {
		path = fmt.Sprintf("/assign/exercises/%d", workoutID)
	}
	raw, err := c.doJSON(ctx, call{
		op:       "create exercise",
		method:   http.MethodPost,
		path:     path,
		body:     map[string]string{"exercise_name": strings.TrimSpace(name), "muscle": strings.TrimSpace(muscle)},
		private:  true,
		entity:   "workout",
		entityID: workoutID,
	})
	if err != nil {
		return model.Exercise{}, err
	}
	return normalizeExercise(raw)
}

func (c *Client) FetchExercise(ctx context.Context, exerciseID int64) (model.Exercise, error) {
	raw, err := c.doJSON(ctx, call{
		op:       "fetch exercise",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/exercises/%d", exerciseID),
		private:  true,
		entity:   "exercise",
		entityID: exerciseID,
	})
	if err != nil {
		return model.Exercise{}, err
	}
	return normalizeExercise(raw)
}

// CreateSet records a set against an exercise; exerciseID 0 creates it
// unassigned. Sets are immutable once recorded.
func (c *Client) CreateSet(ctx context.Context, exerciseID int64, weight float64, reps int) (model.Set, error) {
	if reps < 0 {
		return model.Set{}, &model.ValidationError{Field: "reps", Reason: "must be non-negative"}
	}
	path := "/sets"
	if exerciseID > 0 {
		path = fmt.Sprintf("/assign/sets/%d", exerciseID)
	}
	raw, err := c.doJSON(ctx, call{
		op:       "create set",
		method:   http.MethodPost,
		path:     path,
		body:     map[string]any{"weight": weight, "reps": reps},
		private:  true,
		entity:   "exercise",
		entityID: exerciseID,
	})
	if err != nil {
		return model.Set{}, err
	}
	return normalizeSet(raw)
}

// AddFriend links another account to the session owner. The friend link is a
// non-owning association; this client never loads the friend's graph.
func (c *Client) AddFriend(ctx context.Context, friendID int64) (model.Friend, error) {
	raw, err := c.doJSON(ctx, call{
		op:       "add friend",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/users/friend/%d", friendID),
		private:  true,
		entity:   "user",
		entityID: friendID,
	})
	if err != nil {
		return model.Friend{}, err
	}
	return normalizeFriend(raw)
}

func (c *Client) FetchHealthFiles(ctx context.Context) ([]model.HealthFile, error) {
	raw, err := c.doJSON(ctx, call{
		op:      "list health files",
		method:  http.MethodGet,
		path:    "/users/files",
		private: true,
		entity:  "health file",
	})
	if err != nil {
		return nil, err
	}
	items, err := collection("health file list", raw, "healthFiles", "health_files")
	if err != nil {
		return nil, err
	}
	return normalizeList(items, normalizeHealthFile)
}

func (c *Client) FetchHealthFile(ctx context.Context, fileID int64) (model.HealthFile, error) {
	raw, err := c.doJSON(ctx, call{
		op:       "fetch health file",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/users/files/%d", fileID),
		private:  true,
		entity:   "health file",
		entityID: fileID,
	})
	if err != nil {
		return model.HealthFile{}, err
	}
	return normalizeHealthFile(raw)
}

// UploadHealthFile sends a named document as a multipart form, matching the
// server's `name` + `content` field contract, and returns the stored file
// with its opaque link.
func (c *Client) UploadHealthFile(ctx context.Context, name, filename string, content io.Reader) (model.HealthFile, error) {
	if strings.TrimSpace(name) == "" {
		return model.HealthFile{}, &model.ValidationError{Field: "name", Reason: "is required"}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", name); err != nil {
		return model.HealthFile{}, &model.TransportError{Op: "upload health file", Err: err}
	}
	part, err := mw.CreateFormFile("content", filename)
	if err != nil {
		return model.HealthFile{}, &model.TransportError{Op: "upload health file", Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return model.HealthFile{}, &model.TransportError{Op: "upload health file", Err: err}
	}
	if err := mw.Close(); err != nil {
		return model.HealthFile{}, &model.TransportError{Op: "upload health file", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base()+"/users/files", &buf)
	if err != nil {
		return model.HealthFile{}, &model.TransportError{Op: "upload health file", Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := c.sess().Attach(req); err != nil {
		return model.HealthFile{}, err
	}

	raw, status, err := c.send(req, "upload health file")
	if err != nil {
		return model.HealthFile{}, err
	}
	if status < 200 || status >= 300 {
		return model.HealthFile{}, classify(call{op: "upload health file", entity: "health file"}, status, errorMessage(raw))
	}
	return normalizeHealthFile(raw)
}
