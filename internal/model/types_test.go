package model

import (
	"testing"
	"time"
)

func TestWorkoutValidateOrdering(t *testing.T) {
	t.Parallel()

	started := time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC)
	before := started.Add(-time.Minute)
	after := started.Add(time.Hour)

	open := Workout{ID: 1, TimeStarted: started, MuscleGroup: "legs"}
	if err := open.Validate(); err != nil {
		t.Fatalf("open workout invalid: %v", err)
	}
	if open.Closed() {
		t.Fatalf("open workout reported closed")
	}

	closed := Workout{ID: 1, TimeStarted: started, TimeEnded: &after, MuscleGroup: "legs"}
	if err := closed.Validate(); err != nil {
		t.Fatalf("closed workout invalid: %v", err)
	}
	if !closed.Closed() {
		t.Fatalf("ended workout reported open")
	}

	backwards := Workout{ID: 1, TimeStarted: started, TimeEnded: &before, MuscleGroup: "legs"}
	if err := backwards.Validate(); err == nil {
		t.Fatalf("expected validation error for end before start")
	}
}

func TestSessionValid(t *testing.T) {
	t.Parallel()

	now := time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC)
	s := Session{Token: "tok", Expiration: now.Add(time.Minute)}
	if !s.Valid(now) {
		t.Fatalf("unexpired session reported invalid")
	}
	if s.Valid(now.Add(2 * time.Minute)) {
		t.Fatalf("expired session reported valid")
	}
	if (Session{Expiration: now.Add(time.Minute)}).Valid(now) {
		t.Fatalf("tokenless session reported valid")
	}
}

func TestPublicProjectionOmitsCredentials(t *testing.T) {
	t.Parallel()

	u := User{
		ID:                5,
		Email:             "a@x.com",
		SessionToken:      "tok",
		UpdateToken:       "upd",
		SessionExpiration: time.Now().Add(time.Hour),
		Workouts:          []Workout{{ID: 1, MuscleGroup: "legs"}},
		Friends:           []Friend{{ID: 2, Username: "b@x.com"}},
		HealthFiles:       []HealthFile{{ID: 9, Name: "bloodwork"}},
	}
	p := u.Public()
	if p.ID != u.ID || p.Email != u.Email {
		t.Fatalf("public projection lost identity fields: %+v", p)
	}
	if len(p.Workouts) != 1 || len(p.Friends) != 1 {
		t.Fatalf("public projection lost collections: %+v", p)
	}
	// LoginUser has no credential fields at all; the type system enforces
	// the confidentiality invariant rather than a runtime scrub.
}
