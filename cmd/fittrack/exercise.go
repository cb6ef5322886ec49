package fittrack

import (
	"fmt"

	"github.com/RohitValiveti/Fitness-Tracker/internal/api"
	"github.com/spf13/cobra"
)

var (
	exerciseWorkoutID int64
	exerciseName      string
	exerciseMuscle    string
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Record and inspect exercises",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an exercise, optionally assigned to a workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *api.Client) error {
			exercise, err := client.CreateExercise(cmd.Context(), exerciseWorkoutID, exerciseName, exerciseMuscle)
			if err != nil {
				return err
			}
			if exercise.WorkoutID > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to workout %d\n", exercise.ExerciseName, exercise.Muscle, exercise.WorkoutID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Added unassigned exercise %s (%s)\n", exercise.ExerciseName, exercise.Muscle)
			}
			return nil
		})
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an exercise with its sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg("exercise id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(client *api.Client) error {
			exercise, err := client.FetchExercise(cmd.Context(), id)
			if err != nil {
				if notFound(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "Exercise not found")
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exercise %d: %s (%s)\n", exercise.ID, exercise.ExerciseName, exercise.Muscle)
			if len(exercise.Sets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Sets: none")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "SET\tWEIGHT\tREPS")
			for i, s := range exercise.Sets {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%.1f\t%d\n", i+1, s.Weight, s.Reps)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseShowCmd)
	exerciseAddCmd.Flags().Int64Var(&exerciseWorkoutID, "workout", 0, "Workout to assign the exercise to (0 = unassigned)")
	exerciseAddCmd.Flags().StringVar(&exerciseName, "name", "", "Exercise name")
	exerciseAddCmd.Flags().StringVar(&exerciseMuscle, "muscle", "", "Muscle worked")
	_ = exerciseAddCmd.MarkFlagRequired("name")
	_ = exerciseAddCmd.MarkFlagRequired("muscle")
}
