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

	"github.com/spf13/cobra"

	"github.com/entrelineas/entrelineas/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the document cache",
	Long:  `Inspect and clear the SQLite cache of converted documents.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		stats, err := db.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to read stats: %w", err)
		}

		fmt.Printf("Documents:   %d\n", stats.Documents)
		fmt.Printf("Total pairs: %d\n", stats.TotalPairs)
		fmt.Printf("Total pages: %d\n", stats.TotalPages)
		if !stats.OldestDocument.IsZero() {
			fmt.Printf("Oldest:      %s\n", stats.OldestDocument.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached documents and library entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		n, err := db.Clear(context.Background())
		if err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Printf("Removed %d cached document(s)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
