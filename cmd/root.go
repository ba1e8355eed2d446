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
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var (
	cfgFile string
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "entrelineas",
	Short: "Bilingual interlinear PDF reader",
	Long: `Convert a Spanish PDF into a bilingual interlinear document: every
source sentence followed by its English translation, in original reading
order and pagination.

Translation services: Google Cloud Translate, Ollama (local LLM), or any
OpenAI-compatible endpoint. Finished documents are cached by content
fingerprint, so re-opening a PDF never re-runs translation.

Use "entrelineas convert --help" for conversion options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.entrelineas.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath(), "Path to the SQLite document cache")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".entrelineas")
		}
	}

	viper.SetEnvPrefix("ENTRELINEAS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	dbPath = fallbackString(rootCmd.PersistentFlags(), "db", "db", dbPath)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "entrelineas.db"
	}
	return filepath.Join(home, ".entrelineas.db")
}
