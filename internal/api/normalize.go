package api

import (
	"math"
	"time"

	"github.com/RohitValiveti/Fitness-Tracker/internal/model"
)

// The server speaks snake_case and carries a couple of historical spellings
// ("muslce", "repetitions"); the entity model is canonical camelCase. All of
// that mapping lives here: callers and the model never see wire names.
//
// Unknown fields are ignored. Absent optional collections come back as empty
// slices, never nil and never an error. A required field that is missing or
// of the wrong type fails with a ShapeError naming the entity and field, and
// no partially built entity escapes.

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseInstant(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// pick returns the first of names present in raw. The canonical name is
// listed first so camelCase payloads win over snake_case when both appear.
func pick(raw map[string]any, names ...string) (any, string, bool) {
	for _, name := range names {
		if v, ok := raw[name]; ok {
			return v, name, true
		}
	}
	return nil, names[0], false
}

func idField(entity string, raw map[string]any, names ...string) (int64, error) {
	v, name, ok := pick(raw, names...)
	if !ok {
		return 0, &model.ShapeError{Entity: entity, Field: name, Reason: "is missing"}
	}
	return toID(entity, name, v)
}

// optIDField tolerates an absent or null foreign key; the server leaves
// unassigned ownership columns null.
func optIDField(entity string, raw map[string]any, names ...string) (int64, error) {
	v, name, ok := pick(raw, names...)
	if !ok || v == nil {
		return 0, nil
	}
	return toID(entity, name, v)
}

func toID(entity, field string, v any) (int64, error) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, &model.ShapeError{Entity: entity, Field: field, Reason: "is not an integer"}
	}
	if f < 0 {
		return 0, &model.ShapeError{Entity: entity, Field: field, Reason: "is negative"}
	}
	return int64(f), nil
}

func stringField(entity string, raw map[string]any, names ...string) (string, error) {
	v, name, ok := pick(raw, names...)
	if !ok {
		return "", &model.ShapeError{Entity: entity, Field: name, Reason: "is missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &model.ShapeError{Entity: entity, Field: name, Reason: "is not a string"}
	}
	return s, nil
}

func numberField(entity string, raw map[string]any, names ...string) (float64, error) {
	v, name, ok := pick(raw, names...)
	if !ok {
		return 0, &model.ShapeError{Entity: entity, Field: name, Reason: "is missing"}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &model.ShapeError{Entity: entity, Field: name, Reason: "is not a number"}
	}
	return f, nil
}

func timeField(entity string, raw map[string]any, names ...string) (time.Time, error) {
	s, err := stringField(entity, raw, names...)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := parseInstant(s)
	if !ok {
		_, name, _ := pick(raw, names...)
		return time.Time{}, &model.ShapeError{Entity: entity, Field: name, Reason: "is not a valid timestamp"}
	}
	return t, nil
}

// optTimeField maps an absent or null timestamp to nil, e.g. time_ended on a
// workout still in progress.
func optTimeField(entity string, raw map[string]any, names ...string) (*time.Time, error) {
	v, name, ok := pick(raw, names...)
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, &model.ShapeError{Entity: entity, Field: name, Reason: "is not a string"}
	}
	t, ok := parseInstant(s)
	if !ok {
		return nil, &model.ShapeError{Entity: entity, Field: name, Reason: "is not a valid timestamp"}
	}
	return &t, nil
}

// collection pulls an optional nested list, defaulting absent or null to an
// empty slice. An element that is not an object fails the whole call.
func collection(entity string, raw map[string]any, names ...string) ([]map[string]any, error) {
	v, name, ok := pick(raw, names...)
	if !ok || v == nil {
		return []map[string]any{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &model.ShapeError{Entity: entity, Field: name, Reason: "is not a list"}
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &model.ShapeError{Entity: entity, Field: name, Reason: "contains a non-object element"}
		}
		out = append(out, obj)
	}
	return out, nil
}

// normalizeList applies a single-entity normalizer element-wise and fails the
// whole list on the first bad element. A list with a silently dropped element
// would render a graph with missing ownership edges, so best-effort is out.
func normalizeList[T any](items []map[string]any, one func(map[string]any) (T, error)) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		entity, err := one(item)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

func normalizeSet(raw map[string]any) (model.Set, error) {
	id, err := idField("set", raw, "id")
	if err != nil {
		return model.Set{}, err
	}
	weight, err := numberField("set", raw, "weight")
	if err != nil {
		return model.Set{}, err
	}
	reps, err := idField("set", raw, "reps", "repetitions")
	if err != nil {
		return model.Set{}, err
	}
	exerciseID, err := optIDField("set", raw, "exercisesId", "exercise_id", "exercises_id")
	if err != nil {
		return model.Set{}, err
	}
	return model.Set{ID: id, Weight: weight, Reps: int(reps), ExercisesID: exerciseID}, nil
}

func normalizeExercise(raw map[string]any) (model.Exercise, error) {
	id, err := idField("exercise", raw, "id")
	if err != nil {
		return model.Exercise{}, err
	}
	name, err := stringField("exercise", raw, "exerciseName", "exercise_name")
	if err != nil {
		return model.Exercise{}, err
	}
	// The server's serializer spells the muscle column "muslce" on the wire.
	muscle, err := stringField("exercise", raw, "muscle", "muslce")
	if err != nil {
		return model.Exercise{}, err
	}
	workoutID, err := optIDField("exercise", raw, "workoutId", "workout_id")
	if err != nil {
		return model.Exercise{}, err
	}
	items, err := collection("exercise", raw, "sets")
	if err != nil {
		return model.Exercise{}, err
	}
	sets, err := normalizeList(items, normalizeSet)
	if err != nil {
		return model.Exercise{}, err
	}
	return model.Exercise{
		ID:           id,
		ExerciseName: name,
		Muscle:       muscle,
		Sets:         sets,
		WorkoutID:    workoutID,
	}, nil
}

func normalizeWorkout(raw map[string]any) (model.Workout, error) {
	id, err := idField("workout", raw, "id")
	if err != nil {
		return model.Workout{}, err
	}
	started, err := timeField("workout", raw, "timeStarted", "time_started")
	if err != nil {
		return model.Workout{}, err
	}
	ended, err := optTimeField("workout", raw, "timeEnded", "time_ended")
	if err != nil {
		return model.Workout{}, err
	}
	muscleGroup, err := stringField("workout", raw, "muscleGroup", "muscle_group")
	if err != nil {
		return model.Workout{}, err
	}
	userID, err := optIDField("workout", raw, "userId", "user_id")
	if err != nil {
		return model.Workout{}, err
	}
	items, err := collection("workout", raw, "exercises")
	if err != nil {
		return model.Workout{}, err
	}
	exercises, err := normalizeList(items, normalizeExercise)
	if err != nil {
		return model.Workout{}, err
	}
	return model.Workout{
		ID:          id,
		TimeStarted: started,
		TimeEnded:   ended,
		MuscleGroup: muscleGroup,
		Exercises:   exercises,
		UserID:      userID,
	}, nil
}

// normalizeFriend accepts "email" as an alternate for username: the server's
// reduced user serializer returns the email where this client displays a
// username.
func normalizeFriend(raw map[string]any) (model.Friend, error) {
	id, err := idField("friend", raw, "id")
	if err != nil {
		return model.Friend{}, err
	}
	username, err := stringField("friend", raw, "username", "email")
	if err != nil {
		return model.Friend{}, err
	}
	return model.Friend{ID: id, Username: username}, nil
}

func normalizeHealthFile(raw map[string]any) (model.HealthFile, error) {
	id, err := idField("health file", raw, "id")
	if err != nil {
		return model.HealthFile{}, err
	}
	name, err := stringField("health file", raw, "name")
	if err != nil {
		return model.HealthFile{}, err
	}
	link, err := stringField("health file", raw, "link")
	if err != nil {
		return model.HealthFile{}, err
	}
	userID, err := optIDField("health file", raw, "userId", "user_id")
	if err != nil {
		return model.HealthFile{}, err
	}
	return model.HealthFile{ID: id, Name: name, Link: link, UserID: userID}, nil
}

// normalizeLoginUser builds the reduced projection. Credential fields are
// dropped by construction even when a broken public endpoint leaks them.
func normalizeLoginUser(raw map[string]any) (model.LoginUser, error) {
	id, err := idField("user", raw, "id")
	if err != nil {
		return model.LoginUser{}, err
	}
	email, err := stringField("user", raw, "email")
	if err != nil {
		return model.LoginUser{}, err
	}
	workoutItems, err := collection("user", raw, "workouts")
	if err != nil {
		return model.LoginUser{}, err
	}
	workouts, err := normalizeList(workoutItems, normalizeWorkout)
	if err != nil {
		return model.LoginUser{}, err
	}
	friendItems, err := collection("user", raw, "friends")
	if err != nil {
		return model.LoginUser{}, err
	}
	friends, err := normalizeList(friendItems, normalizeFriend)
	if err != nil {
		return model.LoginUser{}, err
	}
	return model.LoginUser{ID: id, Email: email, Workouts: workouts, Friends: friends}, nil
}

// normalizeUser builds the strict projection for the owner's own view. The
// credential fields are optional: the private user endpoint omits them and
// they are filled in from the session manager by the caller when needed.
func normalizeUser(raw map[string]any) (model.User, error) {
	login, err := normalizeLoginUser(raw)
	if err != nil {
		return model.User{}, err
	}
	user := model.User{
		ID:       login.ID,
		Email:    login.Email,
		Workouts: login.Workouts,
		Friends:  login.Friends,
	}
	if v, _, ok := pick(raw, "sessionToken", "session_token"); ok {
		if s, ok := v.(string); ok {
			user.SessionToken = s
		}
	}
	if v, _, ok := pick(raw, "updateToken", "update_token"); ok {
		if s, ok := v.(string); ok {
			user.UpdateToken = s
		}
	}
	exp, err := optTimeField("user", raw, "sessionExpiration", "session_expiration")
	if err != nil {
		return model.User{}, err
	}
	if exp != nil {
		user.SessionExpiration = *exp
	}
	fileItems, err := collection("user", raw, "healthFiles", "health_files")
	if err != nil {
		return model.User{}, err
	}
	files, err := normalizeList(fileItems, normalizeHealthFile)
	if err != nil {
		return model.User{}, err
	}
	user.HealthFiles = files
	return user, nil
}

func normalizeSession(raw map[string]any) (model.Session, error) {
	token, err := stringField("session", raw, "sessionToken", "session_token")
	if err != nil {
		return model.Session{}, err
	}
	update, err := stringField("session", raw, "updateToken", "update_token")
	if err != nil {
		return model.Session{}, err
	}
	expiration, err := timeField("session", raw, "sessionExpiration", "session_expiration")
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: token, UpdateToken: update, Expiration: expiration}, nil
}
