package cli

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"

	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/internal/propagate"
	"github.com/dhg-hub/drivemeta/internal/resolve"
	"github.com/dhg-hub/drivemeta/models"
)

var flagMapping string

var quotedRe = regexp.MustCompile(`^['"](.+)['"]$`)

// parseMapping splits a mapping of the form 'folder name': 'file.mp4'
// into its two quoted parts.
func parseMapping(mapping string) (folder, file string, err error) {
	colon := strings.Index(mapping, ":")
	if colon == -1 {
		return "", "", &cmderr.ValidationError{Msg: "mapping must be in format: 'folder name': 'file name.mp4'"}
	}
	folderPart := strings.TrimSpace(mapping[:colon])
	filePart := strings.TrimSpace(mapping[colon+1:])

	fm := quotedRe.FindStringSubmatch(folderPart)
	if fm == nil {
		return "", "", &cmderr.ValidationError{Msg: "folder name must be in quotes"}
	}
	gm := quotedRe.FindStringSubmatch(filePart)
	if gm == nil {
		return "", "", &cmderr.ValidationError{Msg: "file name must be in quotes"}
	}
	return fm[1], gm[1], nil
}

var updateFolderVideoMappingCmd = &cobra.Command{
	Use:   "update-folder-video-mapping",
	Short: "Set a folder's main_video_id from a 'folder': 'file.mp4' mapping",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.Validate(flagMapping,
			validation.Required.Error("--mapping is required")); err != nil {
			return &cmderr.ValidationError{Msg: err.Error()}
		}

		folderName, fileName, err := parseMapping(flagMapping)
		if err != nil {
			return err
		}
		if !models.HasVideoExtension(fileName) {
			return &cmderr.ValidationError{Msg: fmt.Sprintf("%q does not end in a video extension", fileName)}
		}

		fmt.Println("=== Update Main Video ID from Folder-Video Mapping ===")
		if flagDryRun {
			fmt.Println("Mode: DRY RUN")
		} else {
			fmt.Println("Mode: ACTUAL UPDATE")
		}
		fmt.Printf("Folder: %q\n", folderName)
		fmt.Printf("File: %q\n", fileName)

		resolver := resolve.NewResolver(app.Store.Sources, app.Log)
		folder, err := resolver.ResolveFolder(folderName)
		if err != nil {
			return err
		}
		fmt.Printf("Found folder: %s (id: %s)\n", folder.Name, folder.ID)

		video, err := resolver.ResolveVideo(fileName)
		if err != nil {
			return err
		}
		fmt.Printf("Found file: %s (id: %s)\n", video.Name, video.ID)

		return runPropagation(newPropagator(), folder, video)
	},
}

// runPropagation is shared by both mapping-style commands: run the
// propagator, print the closing summary block, and pass the propagator's
// error through. A PartialBatchFailure still gets a summary and is left
// for Execute to map to a zero exit.
func runPropagation(prop *propagate.Propagator, folder, video *models.SourceEntry) error {
	result, err := prop.Run(folder, video)
	if err != nil {
		var pbf *cmderr.PartialBatchFailure
		if result == nil || !errors.As(err, &pbf) {
			return err
		}
	}

	fmt.Println("\n=== Summary ===")
	fmt.Printf("Folder: %s (id: %s)\n", result.FolderName, result.FolderID)
	fmt.Printf("File: %s (id: %s)\n", result.VideoName, result.VideoID)
	fmt.Printf("Descendants: %d, updated: %d, batches: %d, failed batches: %d\n",
		result.Descendants, result.Updated, result.Batches, result.FailedBatches)
	if result.DryRun {
		fmt.Println("Note: No actual changes were made (--dry-run mode)")
	}
	if result.FailedBatches > 0 {
		fmt.Printf("Warning: %d update batches failed; see log output\n", result.FailedBatches)
	}
	return err
}

// newPropagator builds the propagator for the current invocation's flags.
func newPropagator() *propagate.Propagator {
	prop := propagate.NewPropagator(app.Store.Sources, app.Log)
	prop.DryRun = flagDryRun
	prop.Limit = flagLimit
	return prop
}

func init() {
	updateFolderVideoMappingCmd.Flags().StringVar(&flagMapping, "mapping", "",
		`mapping in format: 'folder name': 'file name.mp4'`)
	rootCmd.AddCommand(updateFolderVideoMappingCmd)
}
