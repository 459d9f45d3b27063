package gpt

import (
	"context"

	gpt "github.com/m-ariany/gpt-chat-client"
)

// Prompter sends one instruction/prompt pair and returns the raw completion.
type Prompter interface {
	Ask(ctx context.Context, instruction, prompt string) (string, error)
}

type ClientFactory interface {
	Prompter
	Client() (Client, error)
	ClientWithConfig(ClientConfig) (Client, error)
}

// factory hands out clones of one base client, so every conversation starts from a clean history.
type factory struct {
	client *gpt.Client
}

func NewClientFactory(cnf ClientConfig) (ClientFactory, error) {
	client, err := gpt.NewClient(cnf)
	if err != nil {
		return nil, err
	}
	return &factory{client: client}, nil
}

func (g factory) Client() (Client, error) {
	return Client{Client: g.client.Clone()}, nil
}

func (g factory) ClientWithConfig(cnf ClientConfig) (Client, error) {
	return Client{Client: g.client.CloneWithConfig(cnf)}, nil
}

func (g factory) Ask(ctx context.Context, instruction, prompt string) (string, error) {
	c, err := g.Client()
	if err != nil {
		return "", err
	}

	c.Instruct(instruction)
	return c.Prompt(ctx, prompt)
}

type Client struct {
	*gpt.Client
}

type ClientConfig = gpt.ClientConfig
