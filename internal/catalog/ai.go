package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-ecocidade/internal/gpt"
	"go-ecocidade/internal/model"
	"go-ecocidade/internal/utils"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
)

type response struct {
	Products []model.Product `json:"products"`
}

// Truncater keeps prompts inside the model's token budget.
type Truncater interface {
	Truncate(s string, maxTokens int) string
}

// AI asks a chat completion model for products. Failed calls are retried, and a circuit
// breaker stops calling the model after repeated failures.
type AI struct {
	prompter  gpt.Prompter
	tokenizer Truncater
	maxTokens int
	retry     utils.RetryHandler
	breaker   *gobreaker.CircuitBreaker[[]model.Product]
}

type AIOption func(*AI)

func WithTokenizer(t Truncater, maxPromptTokens int) AIOption {
	return func(a *AI) {
		a.tokenizer = t
		a.maxTokens = maxPromptTokens
	}
}

func WithRetry(h utils.RetryHandler) AIOption {
	return func(a *AI) {
		a.retry = h
	}
}

func WithBreaker(settings gobreaker.Settings) AIOption {
	return func(a *AI) {
		a.breaker = gobreaker.NewCircuitBreaker[[]model.Product](settings)
	}
}

func NewAI(prompter gpt.Prompter, opts ...AIOption) *AI {
	a := &AI{
		prompter: prompter,
		retry:    utils.NewRetryHandler(retryTimeout, retryDelay, retryAttempts),
	}
	WithBreaker(gobreaker.Settings{
		Name:    "catalog-ai",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})(a)

	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *AI) FetchCatalog(ctx context.Context, category string) ([]model.Product, error) {
	instruction := fmt.Sprintf(CATALOG_INSTRUCTION, strings.Join(PartnerSites, ", "))
	prompt := CATALOG_PROMPT_ALL
	if category != "" {
		prompt = fmt.Sprintf(CATALOG_PROMPT_CATEGORY, category)
	}
	if a.tokenizer != nil && a.maxTokens > 0 {
		prompt = a.tokenizer.Truncate(prompt, a.maxTokens)
	}

	products, err := a.breaker.Execute(func() ([]model.Product, error) {
		var answer string
		err := a.retry.DoContext(ctx, func(ctx context.Context) error {
			var err error
			answer, err = a.prompter.Ask(ctx, instruction, prompt)
			return err
		})
		if err != nil {
			return nil, err
		}
		return parseProducts(answer)
	})
	if err != nil {
		return nil, unavailable(fmt.Errorf("fetch ai catalog: %w, category: %s", err, category))
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		if p.Category == "" {
			p.Category = category
		}
		if !matchesCategory(p, category) {
			continue
		}
		filtered = append(filtered, p)
	}

	return normalize(filtered, true), nil
}

// parseProducts extracts the JSON object of the answer. Models often wrap it in prose or code fences.
func parseProducts(answer string) ([]model.Product, error) {
	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no json object in the answer")
	}

	data := response{}
	if err := json.Unmarshal([]byte(answer[start:end+1]), &data); err != nil {
		return nil, fmt.Errorf("decode ai catalog: %w", err)
	}
	return data.Products, nil
}
