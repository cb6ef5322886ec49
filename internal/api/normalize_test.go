package api

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/RohitValiveti/Fitness-Tracker/internal/model"
)

func decode(t *testing.T, payload string) map[string]any {
	t.Helper()
	raw := map[string]any{}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return raw
}

func TestNormalizeWorkoutSnakeCaseInProgress(t *testing.T) {
	t.Parallel()

	raw := decode(t, `{
		"id": 1,
		"time_started": "2023-04-01 10:30:00",
		"time_ended": null,
		"muscle_group": "legs",
		"exercises": [],
		"user_id": 42
	}`)

	w, err := normalizeWorkout(raw)
	if err != nil {
		t.Fatalf("normalize workout: %v", err)
	}
	if w.ID != 1 || w.MuscleGroup != "legs" || w.UserID != 42 {
		t.Fatalf("unexpected workout: %+v", w)
	}
	if w.TimeEnded != nil {
		t.Fatalf("expected in-progress workout, got end time %v", *w.TimeEnded)
	}
	if w.Closed() {
		t.Fatalf("in-progress workout reported closed")
	}
	if w.Exercises == nil || len(w.Exercises) != 0 {
		t.Fatalf("expected empty exercise slice, got %#v", w.Exercises)
	}
}

func TestNormalizeWorkoutMissingCollectionsDefaultEmpty(t *testing.T) {
	t.Parallel()

	raw := decode(t, `{"id": 3, "time_started": "2023-04-01 10:30:00", "muscle_group": "push"}`)
	w, err := normalizeWorkout(raw)
	if err != nil {
		t.Fatalf("normalize workout: %v", err)
	}
	if w.Exercises == nil {
		t.Fatalf("absent exercises must normalize to an empty slice, not nil")
	}
}

func TestNormalizeWorkoutMissingRequiredField(t *testing.T) {
	t.Parallel()

	raw := decode(t, `{"id": 3, "muscle_group": "push"}`)
	_, err := normalizeWorkout(raw)
	var shapeErr *model.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
	if shapeErr.Entity != "workout" || shapeErr.Field != "timeStarted" {
		t.Fatalf("ShapeError names wrong entity/field: %+v", shapeErr)
	}
}

func TestNormalizeExerciseAcceptsServerSpellings(t *testing.T) {
	t.Parallel()

	// The real serializer writes "muslce" and nests sets with "repetitions".
	raw := decode(t, `{
		"id": 7,
		"exercise_name": "squat",
		"muslce": "quads",
		"workout_id": 1,
		"sets": [
			{"id": 11, "weight": 100, "repetitions": 5, "exercise_id": 7},
			{"id": 12, "weight": 105, "repetitions": 3, "exercise_id": 7}
		]
	}`)

	e, err := normalizeExercise(raw)
	if err != nil {
		t.Fatalf("normalize exercise: %v", err)
	}
	if e.ExerciseName != "squat" || e.Muscle != "quads" {
		t.Fatalf("unexpected exercise: %+v", e)
	}
	if len(e.Sets) != 2 || e.Sets[0].Reps != 5 || e.Sets[1].Weight != 105 {
		t.Fatalf("unexpected sets: %+v", e.Sets)
	}
	simple := e.Simple()
	if simple.ExerciseName != e.ExerciseName || simple.WorkoutID != e.WorkoutID {
		t.Fatalf("simple projection lost fields: %+v", simple)
	}
}

func TestNormalizeListFailsWholeOnBadElement(t *testing.T) {
	t.Parallel()

	raw := decode(t, `{"workouts": [
		{"id": 1, "time_started": "2023-04-01 10:30:00", "muscle_group": "legs"},
		{"id": 2, "muscle_group": "push"}
	]}`)
	items, err := collection("workout list", raw, "workouts")
	if err != nil {
		t.Fatalf("collection: %v", err)
	}
	out, err := normalizeList(items, normalizeWorkout)
	if err == nil {
		t.Fatalf("expected list normalization to fail on second element")
	}
	if out != nil {
		t.Fatalf("failed list normalization leaked partial result: %+v", out)
	}
}

func TestNormalizeLoginUserDropsLeakedCredentials(t *testing.T) {
	t.Parallel()

	// A broken public endpoint may leak credentials; the reduced projection
	// must not have anywhere to put them.
	raw := decode(t, `{
		"id": 7,
		"email": "a@x.com",
		"password": "hunter22",
		"session_token": "sekrit",
		"update_token": "sekrit2",
		"workouts": [],
		"friends": [{"id": 2, "email": "b@x.com"}]
	}`)

	u, err := normalizeLoginUser(raw)
	if err != nil {
		t.Fatalf("normalize login user: %v", err)
	}
	if u.ID != 7 || u.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if len(u.Friends) != 1 || u.Friends[0].Username != "b@x.com" {
		t.Fatalf("unexpected friends: %+v", u.Friends)
	}

	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal reduced projection: %v", err)
	}
	for _, leaked := range []string{"hunter22", "sekrit"} {
		if strings.Contains(string(b), leaked) {
			t.Fatalf("reduced projection leaked %q: %s", leaked, b)
		}
	}
}

func TestNormalizeUserStrictProjection(t *testing.T) {
	t.Parallel()

	raw := decode(t, `{
		"id": 5,
		"email": "a@x.com",
		"session_token": "tok",
		"update_token": "upd",
		"session_expiration": "2023-04-02 10:30:00",
		"workouts": [{"id": 1, "time_started": "2023-04-01 10:30:00", "muscle_group": "legs", "user_id": 5}],
		"friends": [],
		"health_files": [{"id": 9, "name": "bloodwork", "link": "https://bucket/bloodwork.pdf", "user_id": 5}]
	}`)

	u, err := normalizeUser(raw)
	if err != nil {
		t.Fatalf("normalize user: %v", err)
	}
	if u.SessionToken != "tok" || u.UpdateToken != "upd" {
		t.Fatalf("strict projection lost credentials: %+v", u)
	}
	if len(u.HealthFiles) != 1 || u.HealthFiles[0].Name != "bloodwork" {
		t.Fatalf("unexpected health files: %+v", u.HealthFiles)
	}

	public := u.Public()
	if public.ID != 5 || public.Email != "a@x.com" || len(public.Workouts) != 1 {
		t.Fatalf("public projection lost shared fields: %+v", public)
	}
}

func TestNormalizeSetRejectsNegativeReps(t *testing.T) {
	t.Parallel()

	raw := decode(t, `{"id": 1, "weight": 80, "reps": -3}`)
	_, err := normalizeSet(raw)
	var shapeErr *model.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeError for negative reps, got %v", err)
	}
	if shapeErr.Field != "reps" {
		t.Fatalf("ShapeError names wrong field: %+v", shapeErr)
	}
}

func TestNormalizeRejectsWrongTypes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
		run     func(map[string]any) error
		field   string
	}{
		{
			name:    "string id",
			payload: `{"id": "1", "email": "a@x.com"}`,
			run:     func(m map[string]any) error { _, err := normalizeLoginUser(m); return err },
			field:   "id",
		},
		{
			name:    "null email",
			payload: `{"id": 1, "email": null}`,
			run:     func(m map[string]any) error { _, err := normalizeLoginUser(m); return err },
			field:   "email",
		},
		{
			name:    "bad timestamp",
			payload: `{"id": 1, "time_started": "not a time", "muscle_group": "legs"}`,
			run:     func(m map[string]any) error { _, err := normalizeWorkout(m); return err },
			field:   "time_started",
		},
		{
			name:    "fractional id",
			payload: `{"id": 1.5, "email": "a@x.com"}`,
			run:     func(m map[string]any) error { _, err := normalizeLoginUser(m); return err },
			field:   "id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run(decode(t, tc.payload))
			var shapeErr *model.ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("expected ShapeError, got %v", err)
			}
			if shapeErr.Field != tc.field {
				t.Fatalf("expected field %q, got %+v", tc.field, shapeErr)
			}
		})
	}
}

// wireWorkout re-serializes a workout using the server's snake_case naming,
// including its historical spellings.
func wireWorkout(w model.Workout) map[string]any {
	exercises := make([]any, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		sets := make([]any, 0, len(e.Sets))
		for _, s := range e.Sets {
			sets = append(sets, map[string]any{
				"id":          float64(s.ID),
				"weight":      s.Weight,
				"repetitions": float64(s.Reps),
				"exercise_id": float64(s.ExercisesID),
			})
		}
		exercises = append(exercises, map[string]any{
			"id":            float64(e.ID),
			"exercise_name": e.ExerciseName,
			"muslce":        e.Muscle,
			"workout_id":    float64(e.WorkoutID),
			"sets":          sets,
		})
	}
	raw := map[string]any{
		"id":           float64(w.ID),
		"time_started": w.TimeStarted.Format("2006-01-02 15:04:05"),
		"muscle_group": w.MuscleGroup,
		"user_id":      float64(w.UserID),
		"exercises":    exercises,
	}
	if w.TimeEnded != nil {
		raw["time_ended"] = w.TimeEnded.Format("2006-01-02 15:04:05")
	} else {
		raw["time_ended"] = nil
	}
	return raw
}

func TestWorkoutWireRoundTrip(t *testing.T) {
	t.Parallel()

	raw := decode(t, `{
		"id": 1,
		"time_started": "2023-04-01 10:30:00",
		"time_ended": "2023-04-01 11:15:00",
		"muscle_group": "legs",
		"user_id": 42,
		"exercises": [{
			"id": 7,
			"exercise_name": "squat",
			"muslce": "quads",
			"workout_id": 1,
			"sets": [{"id": 11, "weight": 100, "repetitions": 5, "exercise_id": 7}]
		}]
	}`)

	first, err := normalizeWorkout(raw)
	if err != nil {
		t.Fatalf("first normalize: %v", err)
	}
	second, err := normalizeWorkout(wireWorkout(first))
	if err != nil {
		t.Fatalf("second normalize: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("round trip drifted:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if err := second.Validate(); err != nil {
		t.Fatalf("round-tripped workout invalid: %v", err)
	}
}

func TestParseInstantLayouts(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"2023-04-01T10:30:00Z",
		"2023-04-01 10:30:00.123456",
		"2023-04-01 10:30:00",
		"2023-04-01",
	} {
		if _, ok := parseInstant(s); !ok {
			t.Fatalf("expected %q to parse", s)
		}
	}
	if _, ok := parseInstant("yesterday"); ok {
		t.Fatalf("expected junk timestamp to fail")
	}
	want := time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC)
	got, _ := parseInstant("2023-04-01 10:30:00")
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
