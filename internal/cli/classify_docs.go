package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dhg-hub/drivemeta/internal/classify"
	"github.com/dhg-hub/drivemeta/internal/cmderr"
)

var classifyDocsCmd = &cobra.Command{
	Use:   "classify-docs",
	Short: "Classify expert documents that have no document_type_id yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.Cfg.ClassifyURL == "" {
			return &cmderr.ValidationError{Msg: "CLASSIFY_URL environment variable is required for classify-docs"}
		}

		var classifier classify.Classifier = classify.NewRetrying(
			classify.NewHTTPClassifier(app.Cfg.ClassifyURL), app.Log)
		if app.Cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: app.Cfg.RedisAddr})
			classifier = classify.NewCached(classifier, rdb, app.Log)
			app.Log.Info("classification cache enabled", zap.String("addr", app.Cfg.RedisAddr))
		}

		docs, err := app.Store.Documents.ListUnclassified(flagLimit)
		if err != nil {
			return err
		}
		fmt.Printf("Found %d unclassified documents\n", len(docs))

		ctx := context.Background()
		classified, fallbacks, failed := 0, 0, 0
		for _, doc := range docs {
			result, cerr := classifier.Classify(ctx, doc.RawContent)
			if cerr != nil {
				failed++
				app.Log.Error("classification failed", zap.String("doc_id", doc.ID), zap.Error(cerr))
				continue
			}
			if result.Fallback {
				fallbacks++
				app.Log.Warn("fallback classification, not persisting",
					zap.String("doc_id", doc.ID),
					zap.Float64("confidence", result.Confidence))
				continue
			}
			if flagDryRun {
				fmt.Printf("DRY RUN: would set document %s type to %s (%s, confidence %.2f)\n",
					doc.ID, result.DocumentTypeID, result.Label, result.Confidence)
				classified++
				continue
			}
			if serr := app.Store.Documents.SetDocumentType(doc.ID, result.DocumentTypeID); serr != nil {
				failed++
				app.Log.Error("failed to record classification", zap.String("doc_id", doc.ID), zap.Error(serr))
				continue
			}
			classified++
		}

		fmt.Println("\n=== Summary ===")
		fmt.Printf("Documents: %d, classified: %d, fallbacks: %d, failed: %d\n",
			len(docs), classified, fallbacks, failed)
		if flagDryRun {
			fmt.Println("Note: No actual changes were made (--dry-run mode)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyDocsCmd)
}
