package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Markdown renders the report the way the script reports have always
// looked: one section per top-level folder, a file table, then totals.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Main Video Folders Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Run ID: %s\n\n", r.RunID)
	if r.RootDriveID != "" {
		fmt.Fprintf(&b, "Root: %s\n\n", r.RootDriveID)
	}

	for _, s := range r.Sections {
		video := ""
		if s.Folder.MainVideoID != nil {
			video = *s.Folder.MainVideoID
		}
		fmt.Fprintf(&b, "## %s\n\n", s.Folder.Name)
		fmt.Fprintf(&b, "- Folder id: %s\n", s.Folder.ID)
		fmt.Fprintf(&b, "- Main video id: %s\n", video)
		if len(s.Subfolders) > 0 {
			fmt.Fprintf(&b, "- Subfolders: %s\n", strings.Join(s.Subfolders, ", "))
		}
		b.WriteString("\n| File | main_video_id | Status |\n|---|---|---|\n")
		for _, row := range s.Rows {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", row.FileName, row.MainVideoID, row.Status)
		}
		fmt.Fprintf(&b, "\nMatches: %d, Different: %d, Missing: %d\n\n",
			s.Matches, s.Differences, s.Missing)
	}

	b.WriteString("## Totals\n\n")
	fmt.Fprintf(&b, "- Folders: %d\n", len(r.Sections))
	fmt.Fprintf(&b, "- Matches: %d\n", r.Matches)
	fmt.Fprintf(&b, "- Different: %d\n", r.Differences)
	fmt.Fprintf(&b, "- Missing: %d\n", r.Missing)
	return b.String()
}

// DefaultFileName is the timestamped name used when no output path is
// given.
func (r *Report) DefaultFileName() string {
	return fmt.Sprintf("main-video-folders-tree-%s.md",
		r.GeneratedAt.Format("2006-01-02T15-04-05"))
}

// WriteMarkdown writes the rendered report to path, creating parent
// directories as needed, and returns the path written.
func (r *Report) WriteMarkdown(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(r.Markdown()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
