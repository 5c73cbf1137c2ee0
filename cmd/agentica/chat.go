package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/agentica-go/agentica"
	"github.com/agentica-go/agentica/chat"
	"github.com/agentica-go/agentica/model"
	"github.com/agentica-go/agentica/model/anthropic"
	"github.com/agentica-go/agentica/model/openai"
	"github.com/agentica-go/agentica/tool"
)

// ChatCmd starts an interactive session with the tool-calling chat agent.
// The conversation, including tool results, accumulates in one session so
// follow-up questions can refer back to earlier turns.
type ChatCmd struct {
	Provider string `help:"Model provider." enum:"openai,anthropic" default:"openai"`
	BaseURL  string `name:"base-url" help:"OpenAI-compatible endpoint, e.g. http://localhost:11434/v1 for Ollama."`
	Model    string `help:"Model name; empty uses the provider default."`
}

func (c *ChatCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}

	llm, err := c.buildModel()
	if err != nil {
		return err
	}

	assistant := chat.NewAgent("assistant", llm, func(o *chat.Options) {
		o.Tools = []tool.Tool{tool.NewCalculator(), tool.NewReverseString()}
	})

	app := agentica.New(func(o *agentica.Options) {
		o.Scenario = "chat"
		o.Logger = newLogger(cfg)
	})
	app.RegisterAgent(assistant)

	info := llm.Info()
	fmt.Printf("chatting with %s (%s), tools: %s\n", info.Name, info.Provider,
		strings.Join(assistant.ListTools(), ", "))
	fmt.Println("type a message, or 'quit' to exit")

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		_, events, err := app.InvokeSync(ctx, "chat", "assistant", newUserText(line))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		for _, ev := range events {
			if ev.Author == "assistant" && ev.Text() != "" {
				fmt.Println(ev.Text())
			}
		}
	}

	return scanner.Err()
}

func (c *ChatCmd) buildModel() (model.Model, error) {
	switch c.Provider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			o.BaseURL = c.BaseURL
			o.Model = c.Model
		}), nil

	case "anthropic":
		if c.BaseURL != "" {
			return nil, fmt.Errorf("--base-url only applies to the openai provider")
		}
		return anthropic.NewModel(func(o *anthropic.Options) {
			if c.Model != "" {
				o.Model = anthropicsdk.Model(c.Model)
			}
		}), nil
	}

	return nil, fmt.Errorf("unknown provider %q", c.Provider)
}
