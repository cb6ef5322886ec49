package model

import "time"

// Session is the credential triple returned by the register, login, and
// session-refresh endpoints. Token authorizes requests until Expiration;
// UpdateToken outlives it and buys one silent re-authentication.
type Session struct {
	Token       string
	UpdateToken string
	Expiration  time.Time
}

func (s Session) Valid(now time.Time) bool {
	return s.Token != "" && now.Before(s.Expiration)
}

// User is the strict, owner-only view of an account. Password is never held
// here; it exists only as a transient argument to Login/Register.
type User struct {
	ID                int64
	Email             string
	SessionToken      string
	UpdateToken       string
	SessionExpiration time.Time
	Workouts          []Workout
	Friends           []Friend
	HealthFiles       []HealthFile
}

// LoginUser is the reduced projection safe to show for any identity other
// than the authenticated owner. It never carries credential fields.
type LoginUser struct {
	ID       int64
	Email    string
	Workouts []Workout
	Friends  []Friend
}

// Public strips the strict view down to the reduced projection.
func (u User) Public() LoginUser {
	return LoginUser{
		ID:       u.ID,
		Email:    u.Email,
		Workouts: u.Workouts,
		Friends:  u.Friends,
	}
}

// Friend is a display-only back-reference to another account. This client
// never loads the referenced user's graph through it.
type Friend struct {
	ID       int64
	Username string
}

type Workout struct {
	ID          int64
	TimeStarted time.Time
	TimeEnded   *time.Time // nil while the workout is in progress
	MuscleGroup string
	Exercises   []Exercise
	UserID      int64
}

// Closed reports whether the workout has ended and is therefore immutable.
func (w Workout) Closed() bool {
	return w.TimeEnded != nil
}

func (w Workout) Validate() error {
	if w.TimeEnded != nil && w.TimeEnded.Before(w.TimeStarted) {
		return &ValidationError{Field: "timeEnded", Reason: "ends before it starts"}
	}
	return nil
}

type Exercise struct {
	ID           int64
	ExerciseName string
	Muscle       string
	Sets         []Set
	WorkoutID    int64
}

// SimpleExercise omits the set collection for list views.
type SimpleExercise struct {
	ID           int64
	ExerciseName string
	Muscle       string
	WorkoutID    int64
}

func (e Exercise) Simple() SimpleExercise {
	return SimpleExercise{
		ID:           e.ID,
		ExerciseName: e.ExerciseName,
		Muscle:       e.Muscle,
		WorkoutID:    e.WorkoutID,
	}
}

type Set struct {
	ID          int64
	Weight      float64
	Reps        int
	ExercisesID int64
}

type HealthFile struct {
	ID     int64
	Name   string
	Link   string
	UserID int64
}
