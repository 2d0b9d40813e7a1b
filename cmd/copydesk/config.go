// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/bbnet/copydesk/pkg/types"
)

const (
	defaultBaseURL   = "https://boingboing.net"
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "copydesk/0.1"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultCachePath = "pending-cache.json"
	defaultIndexPath = "index.html"
	defaultDBPath    = "history.db"
)

// effectiveConfig assembles the full pipeline configuration from config
// file, environment, and the secrets directory. Credentials never come
// from flags.
func effectiveConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Source: types.SourceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultTimeout,
				UserAgent: defaultUserAgent,
			},
			BaseURL:     defaultBaseURL,
			Username:    secretDefault("wordpress-username", viper.GetString("source.username")),
			AppPassword: secretDefault("wordpress-app-password", viper.GetString("source.app_password")),
			PerPage:     50,
			CachePath:   defaultCachePath,
		},
		Editor: types.EditorConfig{
			AIConfig: types.AIConfig{
				Model:      defaultModel,
				APIKey:     secretDefault("anthropic-api-key", viper.GetString("editor.api_key")),
				MaxRetries: 3,
			},
			MaxTokens: 4096,
		},
		Related: types.RelatedConfig{
			AIConfig: types.AIConfig{
				Model:      defaultModel,
				APIKey:     secretDefault("anthropic-api-key", viper.GetString("related.api_key")),
				MaxRetries: 3,
			},
			Origin:   defaultBaseURL,
			MaxLinks: 3,
		},
		Render:  types.RenderConfig{OutDir: "."},
		Catalog: types.CatalogConfig{IndexPath: defaultIndexPath},
		History: types.HistoryConfig{DBPath: defaultDBPath},
	}

	if v := viper.GetString("source.base_url"); v != "" {
		cfg.Source.BaseURL = v
		cfg.Related.Origin = v
	}
	if v := viper.GetDuration("source.timeout"); v > 0 {
		cfg.Source.Timeout = v
	}
	if v := viper.GetInt("source.per_page"); v > 0 {
		cfg.Source.PerPage = v
	}
	if v := viper.GetString("source.cache_path"); v != "" {
		cfg.Source.CachePath = v
	}
	if v := viper.GetString("editor.model"); v != "" {
		cfg.Editor.Model = v
		cfg.Related.Model = v
	}
	if v := viper.GetString("related.origin"); v != "" {
		cfg.Related.Origin = v
	}
	if v := viper.GetString("render.out_dir"); v != "" {
		cfg.Render.OutDir = v
	}
	if v := viper.GetString("catalog.index_path"); v != "" {
		cfg.Catalog.IndexPath = v
	}
	if v := viper.GetString("history.db_path"); v != "" {
		cfg.History.DBPath = v
	}
	return cfg
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := effectiveConfig()
		// Never echo credentials.
		cfg.Source.Username = ""
		cfg.Source.AppPassword = ""
		cfg.Editor.APIKey = ""
		cfg.Related.APIKey = ""

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
