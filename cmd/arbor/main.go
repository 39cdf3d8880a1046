// Copyright 2025 Poiesic Systems
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

	"github.com/urfave/cli/v2"

	"github.com/poiesic/arbor/ai"
	"github.com/poiesic/arbor/ai/openai"
	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/extract"
	"github.com/poiesic/arbor/forest"
	"github.com/poiesic/arbor/objstore"
	"github.com/poiesic/arbor/pipeline"
	"github.com/poiesic/arbor/storage/badger"
)

func main() {
	app := &cli.App{
		Name:   "arbor",
		Usage:  "Study material ingestion and knowledge tree synthesis",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "parse",
				Usage:  "Extract and consolidate study content from documents, images, and audio",
				Action: parseCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "store-root",
						Usage: "Root directory of the local object store",
						Value: "arbor-store",
					},
					&cli.StringSliceFlag{
						Name:  "doc",
						Usage: "Document asset path or URL (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "image",
						Usage: "Image asset path or URL (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "audio",
						Usage: "Audio asset path or URL (repeatable)",
					},
				),
			},
			{
				Name:   "forest",
				Usage:  "Build and persist a knowledge forest from stored content",
				Action: forestCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "question-attempts",
						Usage: "Generation attempts per concept node",
						Value: 1,
					},
				),
			},
			{
				Name:   "show",
				Usage:  "List stored content records and forests for a user",
				Action: showCommand,
				Flags: []cli.Flag{
					dbFlag(),
					userFlag(),
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "User identifier",
		Required: true,
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		dbFlag(),
		userFlag(),
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible inference service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Model identifier for every task",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "tree-model",
			Usage: "Override model for forest skeleton proposals",
		},
		&cli.StringFlag{
			Name:  "question-model",
			Usage: "Override model for question generation",
		},
	}
}

func newProvider(c *cli.Context) (ai.Provider, error) {
	opts := []ai.ConfigOption{
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
	}
	if m := c.String("tree-model"); m != "" {
		opts = append(opts, ai.WithTreeModel(m))
	}
	if m := c.String("question-model"); m != "" {
		opts = append(opts, ai.WithQuestionModel(m))
	}

	return openai.NewProvider(ai.NewConfig(opts...))
}

func parseCommand(c *cli.Context) error {
	ctx := context.Background()

	req := &core.ParseRequest{
		UserID:    c.String("user"),
		Documents: c.StringSlice("doc"),
		Images:    c.StringSlice("image"),
		Audio:     c.StringSlice("audio"),
	}
	if err := core.ValidateParseRequest(req); err != nil {
		return err
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	contentRepo, err := badger.NewContentRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer contentRepo.Close()

	store, err := objstore.NewFS(c.String("store-root"))
	if err != nil {
		return err
	}

	provider, err := newProvider(c)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	analyzer := provider.ContentAnalyzer()

	documents, err := extract.NewDocumentExtractor(store, analyzer)
	if err != nil {
		return err
	}
	defer documents.Release()

	images, err := extract.NewImageExtractor(store, analyzer)
	if err != nil {
		return err
	}
	defer images.Release()

	audio, err := extract.NewAudioExtractor(store, analyzer)
	if err != nil {
		return err
	}

	coord, err := pipeline.NewCoordinator(documents, images, audio,
		pipeline.WithContentRepository(contentRepo),
		pipeline.WithProgressSink(consoleSink{}),
	)
	if err != nil {
		return err
	}

	content, err := coord.Run(ctx, req)
	if err != nil {
		return err
	}

	printContent(content)
	return nil
}

func forestCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	contentRepo, err := badger.NewContentRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer contentRepo.Close()

	forestRepo, err := badger.NewForestRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer forestRepo.Close()

	provider, err := newProvider(c)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	builder, err := forest.NewBuilder(provider.TreeSynthesizer(),
		forest.WithQuestionAttempts(c.Int("question-attempts")))
	if err != nil {
		return err
	}

	gen, err := forest.NewGenerator(contentRepo, forestRepo, builder,
		forest.WithMilestones(func(userID string, m forest.Milestone) {
			fmt.Printf("... %s %s\n", userID, m)
		}))
	if err != nil {
		return err
	}

	f, id, err := gen.Generate(ctx, c.String("user"))
	if err != nil {
		return err
	}

	if id != 0 {
		fmt.Printf("Forest %d: %d trees, %d nodes, %d questions\n",
			id, len(f.Trees), f.NodeCount(), f.QuestionCount())
	} else {
		fmt.Printf("Forest (not persisted): %d trees, %d nodes, %d questions\n",
			len(f.Trees), f.NodeCount(), f.QuestionCount())
	}
	for _, tree := range f.Trees {
		printTree(tree.Root, "  ")
	}
	return nil
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()
	userID := c.String("user")

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	contentRepo, err := badger.NewContentRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer contentRepo.Close()

	forestRepo, err := badger.NewForestRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer forestRepo.Close()

	records, err := contentRepo.ContentForUser(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Printf("Content records for %s: %d\n", userID, len(records))
	for i, record := range records {
		fmt.Printf("  [%d] %s  docs=%d images=%d audio=%d errors=%d\n",
			i+1, record.CreatedAt.Format("2006-01-02 15:04:05"),
			len(record.Document.Findings), len(record.Image.Findings),
			len(record.Audio.Findings), countErrors(record))
	}

	forests, err := forestRepo.ForestsForUser(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Printf("Forests for %s: %d\n", userID, len(forests))
	for i, f := range forests {
		fmt.Printf("  [%d] %s  trees=%d nodes=%d questions=%d\n",
			i+1, f.CreatedAt.Format("2006-01-02 15:04:05"),
			len(f.Trees), f.NodeCount(), f.QuestionCount())
	}
	return nil
}

func countErrors(record *core.ConsolidatedContent) int {
	return len(record.Document.Errors) + len(record.Image.Errors) + len(record.Audio.Errors)
}

func printContent(content *core.ConsolidatedContent) {
	fmt.Printf("Documents: %d findings, %d errors\n",
		len(content.Document.Findings), len(content.Document.Errors))
	fmt.Printf("Images:    %d findings, %d URLs, %d errors\n",
		len(content.Image.Findings), len(content.Image.URLs), len(content.Image.Errors))
	fmt.Printf("Audio:     %d findings, %d URLs, %d errors\n",
		len(content.Audio.Findings), len(content.Audio.URLs), len(content.Audio.Errors))
	for _, errLine := range content.Document.Errors {
		fmt.Printf("  document error: %s\n", errLine)
	}
	for _, errLine := range content.Image.Errors {
		fmt.Printf("  image error: %s\n", errLine)
	}
	for _, errLine := range content.Audio.Errors {
		fmt.Printf("  audio error: %s\n", errLine)
	}
}

func printTree(node *core.ConceptNode, indent string) {
	if node == nil {
		return
	}
	marker := ""
	if node.Question != nil {
		marker = " [Q]"
	}
	fmt.Printf("%s- %s%s\n", indent, node.Concept, marker)
	for _, child := range node.Children {
		printTree(child, indent+"  ")
	}
}

// consoleSink prints pipeline progress to stdout.
type consoleSink struct{}

func (consoleSink) Publish(_ context.Context, event pipeline.Event) error {
	switch event.Stage {
	case pipeline.StageBranchStarted:
		fmt.Printf("... %s extraction started\n", event.Modality)
	case pipeline.StageBranchCompleted:
		fmt.Printf("... %s extraction complete\n", event.Modality)
	case pipeline.StageConsolidated:
		fmt.Println("... content consolidated")
	case pipeline.StageStored:
		fmt.Println("... content stored")
	}
	return nil
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
