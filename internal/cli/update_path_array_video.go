package cli

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"

	"github.com/dhg-hub/drivemeta/internal/cmderr"
	"github.com/dhg-hub/drivemeta/internal/resolve"
)

var flagPathArray string

var updatePathArrayVideoCmd = &cobra.Command{
	Use:   "update-path-array-video",
	Short: "Resolve a folder and video from a path array and propagate main_video_id",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.Validate(flagPathArray,
			validation.Required.Error("--path-array is required")); err != nil {
			return &cmderr.ValidationError{Msg: err.Error()}
		}

		var segments []string
		if err := json.Unmarshal([]byte(flagPathArray), &segments); err != nil {
			return &cmderr.ValidationError{Msg: fmt.Sprintf("invalid JSON path array: %v", err)}
		}

		resolver := resolve.NewResolver(app.Store.Sources, app.Log)
		folder, video, err := resolver.ResolvePathArray(segments)
		if err != nil {
			return err
		}
		fmt.Printf("Found folder: %s (id: %s)\n", folder.Name, folder.ID)
		fmt.Printf("Found file: %s (id: %s)\n", video.Name, video.ID)

		return runPropagation(newPropagator(), folder, video)
	},
}

func init() {
	updatePathArrayVideoCmd.Flags().StringVar(&flagPathArray, "path-array", "",
		`ordered path segments as JSON, e.g. '["FolderName","file.mp4"]'`)
	rootCmd.AddCommand(updatePathArrayVideoCmd)
}
