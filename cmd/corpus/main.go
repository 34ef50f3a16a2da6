// Copyright 2026 Sagewood Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	corpus "github.com/sagewood/corpus"
	"github.com/sagewood/corpus/ai"
	"github.com/sagewood/corpus/source"
)

func main() {
	// Credentials come from the environment; a .env file is a convenience.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "corpus",
		Usage: "Document ingestion and retrieval engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "corpus-db",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Local corpus root directory",
			},
			&cli.IntFlag{
				Name:  "prefetch-workers",
				Usage: "Concurrent source prefetch workers during sync (0 disables)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import all sources for one topic",
				ArgsUsage: "<topic>",
				Action:    importCommand,
			},
			{
				Name:   "preprocess",
				Usage:  "Ensure topic folders and synchronize the whole corpus",
				Action: preprocessCommand,
			},
			{
				Name:   "topics",
				Usage:  "List known topics (defaults plus discovered)",
				Action: topicsCommand,
			},
			{
				Name:      "search",
				Usage:     "Retrieve the most relevant document texts for a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "topic",
						Aliases: []string{"t"},
						Usage:   "Restrict the search to one topic",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				},
			},
			{
				Name:  "provider",
				Usage: "Inspect or set the embedding provider",
				Subcommands: []*cli.Command{
					{
						Name:   "get",
						Usage:  "Print the current provider",
						Action: providerGetCommand,
					},
					{
						Name:      "set",
						Usage:     "Set the provider (openai, google, ollama)",
						ArgsUsage: "<provider>",
						Action:    providerSetCommand,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Recompute every document embedding under the current provider",
				Action: reembedCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// aiConfigFromEnv builds the provider configuration from the environment.
// Only providers whose credential variables are set become available.
func aiConfigFromEnv() *ai.Config {
	return ai.NewConfig(
		ai.WithOpenAI(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_EMBEDDING_MODEL")),
		ai.WithGoogle(os.Getenv("GOOGLE_API_KEY"), os.Getenv("GOOGLE_EMBEDDING_MODEL")),
		ai.WithOllama(os.Getenv("OLLAMA_HOST"), os.Getenv("OLLAMA_EMBEDDING_MODEL")),
	)
}

// objectConfigFromEnv builds the object-storage configuration, or nil when
// no endpoint is configured.
func objectConfigFromEnv() *source.ObjectConfig {
	endpoint := os.Getenv("CORPUS_S3_ENDPOINT")
	if endpoint == "" {
		return nil
	}
	return &source.ObjectConfig{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("CORPUS_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("CORPUS_S3_SECRET_KEY"),
		UseSSL:    os.Getenv("CORPUS_S3_DISABLE_SSL") == "",
		Bucket:    os.Getenv("CORPUS_S3_BUCKET"),
		Prefix:    os.Getenv("CORPUS_S3_PREFIX"),
	}
}

func openEngine(c *cli.Context) (*corpus.Engine, error) {
	opts := []corpus.EngineOption{
		corpus.WithAIConfig(aiConfigFromEnv()),
	}
	if root := c.String("root"); root != "" {
		opts = append(opts, corpus.WithLocalRoot(root))
	}
	if objectConfig := objectConfigFromEnv(); objectConfig != nil {
		opts = append(opts, corpus.WithObjectStorage(*objectConfig))
	}
	if workers := c.Int("prefetch-workers"); workers > 0 {
		opts = append(opts, corpus.WithPrefetchWorkers(workers))
	}

	engine, err := corpus.Open(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return engine, nil
}

func importCommand(c *cli.Context) error {
	topic := c.Args().First()
	if topic == "" {
		return fmt.Errorf("topic argument is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	result := engine.Service().DocumentsImportTopic(context.Background(), topic)
	fmt.Println(result.Message)
	if !result.OK {
		return cli.Exit("", 1)
	}
	return nil
}

func preprocessCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	result := engine.Service().DocumentsPreprocess(context.Background())
	fmt.Println(result.Message)
	if !result.OK {
		return cli.Exit("", 1)
	}
	return nil
}

func topicsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, topic := range engine.Service().DocumentsTopics(context.Background()) {
		fmt.Println(topic)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	texts, err := engine.Service().Retrieve(context.Background(), c.String("topic"), query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if len(texts) == 0 {
		fmt.Println("no results")
		return nil
	}
	for i, text := range texts {
		fmt.Printf("--- result %d ---\n%s\n", i+1, text)
	}
	return nil
}

func providerGetCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	provider := engine.Service().GetLLMProvider(context.Background())
	if provider == "" {
		fmt.Println("no provider configured")
		return nil
	}
	fmt.Println(provider)
	return nil
}

func providerSetCommand(c *cli.Context) error {
	provider := c.Args().First()
	if provider == "" {
		return fmt.Errorf("provider argument is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	result := engine.Service().SetLLMProvider(context.Background(), provider)
	fmt.Println(result.Message)
	if !result.OK {
		return cli.Exit("", 1)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Service().Reembed(context.Background(), os.Stderr); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}
