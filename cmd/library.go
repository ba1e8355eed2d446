/*
Copyright © 2026 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/entrelineas/entrelineas/internal/store"
)

var bookmarkPage int

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the reading library",
	Long:  `List converted books and keep per-book reading bookmarks.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		books, err := db.ListBooks(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list books: %w", err)
		}

		if len(books) == 0 {
			fmt.Println("No books in the library.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FINGERPRINT\tTITLE\tSENTENCES\tPAGES\tBOOKMARK\tLAST OPENED")
		for _, b := range books {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
				b.Fingerprint[:12], b.Title, b.TotalSentences, b.PageCount,
				b.CurrentPage, b.LastOpened.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var libraryBookmarkCmd = &cobra.Command{
	Use:   "bookmark <fingerprint>",
	Short: "Set the reading bookmark for a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		fingerprint, err := resolveFingerprint(db, args[0])
		if err != nil {
			return err
		}
		if err := db.UpdateBookmark(context.Background(), fingerprint, bookmarkPage); err != nil {
			return fmt.Errorf("failed to update bookmark: %w", err)
		}
		fmt.Printf("Bookmarked page %d\n", bookmarkPage)
		return nil
	},
}

// resolveFingerprint accepts a full fingerprint or an unambiguous prefix.
func resolveFingerprint(db *store.Store, prefix string) (string, error) {
	books, err := db.ListBooks(context.Background())
	if err != nil {
		return "", err
	}
	var match string
	for _, b := range books {
		if len(prefix) <= len(b.Fingerprint) && b.Fingerprint[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("fingerprint prefix %q is ambiguous", prefix)
			}
			match = b.Fingerprint
		}
	}
	if match == "" {
		return "", fmt.Errorf("no book with fingerprint %q", prefix)
	}
	return match, nil
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryBookmarkCmd)

	libraryBookmarkCmd.Flags().IntVarP(&bookmarkPage, "page", "p", 0, "Page number to bookmark")
	_ = libraryBookmarkCmd.MarkFlagRequired("page")
}
