package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhg-hub/drivemeta/internal/report"
)

var (
	flagNoOutputFile bool
	flagOutputPath   string
)

var listMainVideoFoldersTreeCmd = &cobra.Command{
	Use:   "list-main-video-folders-tree",
	Short: "Report main_video_id consistency for every top-level folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		reporter := report.NewConsistencyReporter(app.Store.Sources, app.Log)
		reporter.Limit = flagLimit

		rep, err := reporter.Run("")
		if err != nil {
			return err
		}
		printReportSummary(os.Stdout, rep)

		if flagNoOutputFile {
			return nil
		}
		path := flagOutputPath
		if path == "" {
			path = filepath.Join(app.Cfg.ReportDir, rep.DefaultFileName())
		}
		written, err := rep.WriteMarkdown(path)
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", written)
		return nil
	},
}

func printReportSummary(w io.Writer, rep *report.Report) {
	for _, s := range rep.Sections {
		video := ""
		if s.Folder.MainVideoID != nil {
			video = *s.Folder.MainVideoID
		}
		fmt.Fprintf(w, "%s (main_video_id: %s) - files: %d, matches: %d, different: %d, missing: %d\n",
			s.Folder.Name, video, len(s.Rows), s.Matches, s.Differences, s.Missing)
	}
	fmt.Fprintln(w, "\n=== Summary ===")
	fmt.Fprintf(w, "Folders: %d\n", len(rep.Sections))
	fmt.Fprintf(w, "Matches: %d\n", rep.Matches)
	fmt.Fprintf(w, "Different: %d\n", rep.Differences)
	fmt.Fprintf(w, "Missing: %d\n", rep.Missing)
}

func init() {
	listMainVideoFoldersTreeCmd.Flags().BoolVar(&flagNoOutputFile, "no-output-file", false,
		"print to console only, skip the Markdown file")
	listMainVideoFoldersTreeCmd.Flags().StringVar(&flagOutputPath, "output-path", "",
		"write the Markdown report to this path instead of the default")
	rootCmd.AddCommand(listMainVideoFoldersTreeCmd)
}
