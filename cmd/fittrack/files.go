package fittrack

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RohitValiveti/Fitness-Tracker/internal/api"
	"github.com/spf13/cobra"
)

var fileUploadName string

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage uploaded health files",
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your health files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *api.Client) error {
			files, err := client.FetchHealthFiles(cmd.Context())
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No health files uploaded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tLINK")
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", f.ID, f.Name, f.Link)
			}
			return nil
		})
	},
}

var filesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one health file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg("file id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(client *api.Client) error {
			file, err := client.FetchHealthFile(cmd.Context(), id)
			if err != nil {
				if notFound(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "File not found")
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "File %d: %s\n%s\n", file.ID, file.Name, file.Link)
			return nil
		})
	},
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a health file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		name := fileUploadName
		if name == "" {
			name = filepath.Base(path)
		}
		return withClient(func(client *api.Client) error {
			file, err := client.UploadHealthFile(cmd.Context(), name, filepath.Base(path), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s as file %d\n", file.Name, file.ID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.AddCommand(filesListCmd, filesGetCmd, filesUploadCmd)
	filesUploadCmd.Flags().StringVar(&fileUploadName, "name", "", "Display name for the file (default: file name)")
}
