package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Tougashi/Stunting-sub001/platform"
	"github.com/openai/openai-go"
)

var logger = platform.Logger

// ReplyGenerator produces an assistant reply for one user message.
type ReplyGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// The assistant is scoped to stunting prevention by the system instruction;
// refusal of off-topic questions is enforced by the remote model.
const systemInstruction = "Kamu adalah asisten konsultasi pencegahan stunting pada anak. " +
	"Jawab hanya pertanyaan seputar stunting, gizi anak, dan tumbuh kembang anak. " +
	"Jika pertanyaan di luar topik itu, balas persis dengan: " +
	"\"Maaf, saya hanya bisa membantu pertanyaan seputar pencegahan stunting pada anak.\""

// OpenAIGenerator calls an OpenAI-compatible hosted API. Every call is bounded
// by a timeout and retried at most once, only on transient failure.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIGenerator(client *openai.Client, model string, timeout time.Duration) *OpenAIGenerator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIGenerator{client: client, model: model, timeout: timeout}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reply, err := g.complete(ctx, prompt)
	if err != nil && isTransient(err) {
		logger.Warnf("generation failed, retrying once: %s", err)
		reply, err = g.complete(ctx, prompt)
	}
	return reply, err
}

func (g *OpenAIGenerator) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var system any = systemInstruction
	var user any = prompt
	params := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.ChatCompletionMessageParam{
				Role:    openai.F(openai.ChatCompletionMessageParamRoleSystem),
				Content: openai.F(system),
			},
			openai.ChatCompletionMessageParam{
				Role:    openai.F(openai.ChatCompletionMessageParamRoleUser),
				Content: openai.F(user),
			},
		}),
		Model: openai.F(g.model),
	}

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return completion.Choices[0].Message.Content, nil
}

// isTransient reports whether a second attempt can reasonably succeed.
// Rejections (4xx other than 429) are never retried.
func isTransient(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode >= http.StatusInternalServerError ||
			apierr.StatusCode == http.StatusTooManyRequests
	}
	return !errors.Is(err, context.Canceled)
}
