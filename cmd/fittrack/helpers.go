package fittrack

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/RohitValiveti/Fitness-Tracker/internal/api"
	"github.com/RohitValiveti/Fitness-Tracker/internal/app"
	"github.com/RohitValiveti/Fitness-Tracker/internal/model"
)

func resolveCredentialsPath() (string, error) {
	if strings.TrimSpace(credentialsFlag) != "" {
		return strings.TrimSpace(credentialsFlag), nil
	}
	return app.DefaultCredentialsPath()
}

// withClient builds a client from config and the stored credentials, runs
// the command, and re-saves the credential file when a silent refresh rotated
// the session underneath it.
func withClient(run func(*api.Client) error) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if strings.TrimSpace(baseURLFlag) != "" {
		cfg.BaseURL = strings.TrimSpace(baseURLFlag)
	}
	if timeoutFlag > 0 {
		cfg.Timeout = time.Duration(timeoutFlag) * time.Second
	}

	credPath, err := resolveCredentialsPath()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg.BaseURL, cfg.Timeout)
	stored, found, err := app.LoadCredentials(credPath)
	if err != nil {
		return err
	}
	if found {
		client.Session.Establish(stored)
	}

	runErr := run(client)

	if current := client.Session.Session(); current.Token != "" && current != stored {
		if err := app.SaveCredentials(credPath, current); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

func parseIDArg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// notFound lets read commands render a placeholder line instead of exiting
// with an error when the referenced entity is absent.
func notFound(err error) bool {
	var nf *model.NotFoundError
	return errors.As(err, &nf)
}

func formatInstant(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func printWorkout(out io.Writer, w model.Workout) {
	ended := "in progress"
	if w.TimeEnded != nil {
		ended = formatInstant(*w.TimeEnded)
	}
	fmt.Fprintf(out, "Workout %d (%s)\n", w.ID, w.MuscleGroup)
	fmt.Fprintf(out, "Started: %s\nEnded: %s\n", formatInstant(w.TimeStarted), ended)
	if len(w.Exercises) == 0 {
		fmt.Fprintln(out, "Exercises: none")
		return
	}
	fmt.Fprintln(out, "EXERCISE\tMUSCLE\tSETS")
	for _, e := range w.Exercises {
		fmt.Fprintf(out, "%s\t%s\t%d\n", e.ExerciseName, e.Muscle, len(e.Sets))
	}
}

func printLoginUser(out io.Writer, u model.LoginUser) {
	fmt.Fprintf(out, "User %d\nEmail: %s\n", u.ID, u.Email)
	if len(u.Workouts) == 0 {
		fmt.Fprintln(out, "Workouts: none")
	} else {
		fmt.Fprintf(out, "Workouts: %d\n", len(u.Workouts))
		for _, w := range u.Workouts {
			fmt.Fprintf(out, "- %d %s (started %s)\n", w.ID, w.MuscleGroup, formatInstant(w.TimeStarted))
		}
	}
	if len(u.Friends) == 0 {
		fmt.Fprintln(out, "Friends: none")
	} else {
		fmt.Fprintf(out, "Friends: %d\n", len(u.Friends))
		for _, f := range u.Friends {
			fmt.Fprintf(out, "- %d %s\n", f.ID, f.Username)
		}
	}
}
