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
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/entrelineas/entrelineas/internal/segmenter"
)

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Verify the conversion dependencies are available",
	Long: `Check that the Spanish sentence tokenizer data loads and that the
configured translation service answers, failing fast with a diagnostic
instead of deep inside a conversion.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := segmenter.Preflight(); err != nil {
			return fmt.Errorf("sentence tokenizer: %w", err)
		}
		fmt.Println("Sentence tokenizer: ok")

		svc, err := buildService(serviceName)
		if err != nil {
			return err
		}
		if closer, ok := svc.(io.Closer); ok {
			defer closer.Close()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := svc.IsAvailable(ctx); err != nil {
			return fmt.Errorf("translation service %s: %w", svc.Name(), err)
		}
		fmt.Printf("Translation service %s: ok\n", svc.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(preflightCmd)
	registerServiceFlags(preflightCmd)
}
