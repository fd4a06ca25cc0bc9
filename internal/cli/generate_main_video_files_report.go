package cli

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"

	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/internal/report"
)

var (
	flagFolderID string
	flagOutput   string
)

var generateMainVideoFilesReportCmd = &cobra.Command{
	Use:   "generate-main-video-files-report",
	Short: "Main-video consistency report scoped to one root folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.Validate(flagFolderID,
			validation.Required.Error("--folder-id is required")); err != nil {
			return &cmderr.ValidationError{Msg: err.Error()}
		}

		root, err := app.Store.Sources.FindByDriveID(flagFolderID)
		if err != nil {
			return err
		}
		fmt.Printf("Root folder: %s (drive id: %s)\n", root.Name, root.DriveID)

		reporter := report.NewConsistencyReporter(app.Store.Sources, app.Log)
		reporter.Limit = flagLimit

		rep, err := reporter.Run(root.DriveID)
		if err != nil {
			return err
		}
		printReportSummary(os.Stdout, rep)

		if flagOutput != "" {
			written, werr := rep.WriteMarkdown(flagOutput)
			if werr != nil {
				return werr
			}
			fmt.Printf("Report written to %s\n", written)
		}
		return nil
	},
}

func init() {
	generateMainVideoFilesReportCmd.Flags().StringVar(&flagFolderID, "folder-id", "",
		"drive id of the root folder to report on")
	generateMainVideoFilesReportCmd.Flags().StringVar(&flagOutput, "output", "",
		"write the Markdown report to this path")
	rootCmd.AddCommand(generateMainVideoFilesReportCmd)
}
