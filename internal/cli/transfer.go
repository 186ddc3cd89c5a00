package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/entrypoint"
	"github.com/mrlokans/bookshelf/internal/filestore"
	"github.com/mrlokans/bookshelf/internal/store"
)

func (a *app) newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load books from a JSON document into the configured store",
		Long: `Load books from a JSON document into the configured store.

The document may be a bare array of books or an object whose single key
(usually "books") holds that array. Every book is created anew, so ids and
addedAt are assigned by the target store. Read status and completion values
are carried over. With --dry-run the store is never opened.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := filestore.ReadDocument(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var bookStore store.BookStore
			if !dryRun {
				bookStore, err = entrypoint.OpenStore(ctx, a.cfg, a.logger)
				if err != nil {
					return err
				}
				defer bookStore.Close()
			}

			imported, skipped := 0, 0
			for _, r := range records {
				book := entities.NewBook{Title: r.Title, Author: r.Author, Category: r.Category}
				if err := book.Validate(); err != nil {
					a.logger.Warn("skipping invalid book", zap.String("id", r.ID), zap.Error(err))
					skipped++
					continue
				}
				completedAt, err := entities.ParseCompletedAt(r.CompletedAt)
				if err != nil {
					a.logger.Warn("dropping invalid completion value", zap.String("id", r.ID), zap.Error(err))
				}
				if dryRun {
					imported++
					continue
				}

				created, err := bookStore.Create(ctx, book)
				if err != nil {
					return fmt.Errorf("import %q: %w", book.Title, err)
				}
				if r.IsRead {
					if _, err := bookStore.UpdateStatus(ctx, created.ID, true, completedAt); err != nil {
						return fmt.Errorf("import %q: %w", book.Title, err)
					}
				}
				imported++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d books, skipped %d\n", imported, skipped)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the document without writing to the store")
	return cmd
}

func (a *app) newExportCmd() *cobra.Command {
	var bare bool

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the configured store as a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bookStore, err := entrypoint.OpenStore(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer bookStore.Close()

			records, err := bookStore.List(ctx)
			if err != nil {
				return fmt.Errorf("list books: %w", err)
			}
			envelope := a.cfg.BooksFile.Envelope && !bare
			if err := filestore.WriteDocument(args[0], records, envelope); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d books to %s\n", len(records), args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&bare, "bare", false, `Write a bare array instead of {"books": [...]}`)
	return cmd
}
