package fittrack

import (
	"encoding/json"
	"fmt"

	"github.com/RohitValiveti/Fitness-Tracker/internal/api"
	"github.com/spf13/cobra"
)

var (
	workoutMuscleGroup string
	workoutJSON        bool
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Fetch and record workouts",
}

var workoutGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Fetch a user's workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg("user id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(client *api.Client) error {
			workout, err := client.FetchWorkout(cmd.Context(), id)
			if err != nil {
				if notFound(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "Workout not found")
					return nil
				}
				return err
			}
			if workoutJSON {
				b, err := json.MarshalIndent(workout, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal workout json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printWorkout(cmd.OutOrStdout(), workout)
			return nil
		})
	},
}

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *api.Client) error {
			workouts, err := client.FetchWorkouts(cmd.Context())
			if err != nil {
				return err
			}
			if len(workouts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workouts recorded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tMUSCLE GROUP\tSTARTED\tENDED")
			for _, w := range workouts {
				ended := "in progress"
				if w.TimeEnded != nil {
					ended = formatInstant(*w.TimeEnded)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", w.ID, w.MuscleGroup, formatInstant(w.TimeStarted), ended)
			}
			return nil
		})
	},
}

var workoutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *api.Client) error {
			workout, err := client.CreateWorkout(cmd.Context(), workoutMuscleGroup)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started workout %d (%s)\n", workout.ID, workout.MuscleGroup)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.AddCommand(workoutGetCmd, workoutListCmd, workoutStartCmd)
	workoutGetCmd.Flags().BoolVar(&workoutJSON, "json", false, "Output as JSON")
	workoutStartCmd.Flags().StringVar(&workoutMuscleGroup, "muscle-group", "", "Muscle group for the session")
	_ = workoutStartCmd.MarkFlagRequired("muscle-group")
}
