package platform

import (
	"github.com/Tougashi/Stunting-sub001/config"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	LLMClient *openai.Client
)

// InitLLMClient builds the shared client for the hosted generative API. The
// API key is validated by config.Load, so an empty-credential client can not
// be constructed here.
func InitLLMClient(cfg config.LLMConfig) {
	LLMClient = openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
	)
}
