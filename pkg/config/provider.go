package config

import (
	"fmt"
	"os"

	"github.com/entrhq/vocab/pkg/wordinfo"
)

// BuildWordInfoClient creates the word lookup client based on configuration
// precedence: CLI flags > Environment variables > Config file > Defaults
func BuildWordInfoClient(cliModel, cliBaseURL, cliAPIKey string) (*wordinfo.Client, error) {
	finalModel := cliModel
	finalBaseURL := cliBaseURL
	finalAPIKey := cliAPIKey

	if finalAPIKey == "" {
		finalAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if finalBaseURL == "" {
		finalBaseURL = os.Getenv("OPENAI_BASE_URL")
	}

	var source, target string
	if section := GetWordInfo(); section != nil {
		if finalModel == "" {
			finalModel = section.GetModel()
		}
		if finalBaseURL == "" {
			finalBaseURL = section.GetBaseURL()
		}
		if finalAPIKey == "" {
			finalAPIKey = section.GetAPIKey()
		}
		source, target = section.Languages()
	}

	if finalAPIKey == "" {
		return nil, fmt.Errorf("API key is required. Set OPENAI_API_KEY environment variable, use -api-key flag, or configure in ~/.vocab/config.json")
	}

	opts := []wordinfo.ClientOption{
		wordinfo.WithModel(finalModel),
		wordinfo.WithLanguages(source, target),
	}
	if finalBaseURL != "" {
		opts = append(opts, wordinfo.WithBaseURL(finalBaseURL))
	}

	client, err := wordinfo.NewClient(finalAPIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create word info client: %w", err)
	}
	return client, nil
}
