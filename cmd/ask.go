package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/koopa0/askdocs/internal/chat"
	"github.com/koopa0/askdocs/internal/config"
	"github.com/koopa0/askdocs/internal/gemini"
	"github.com/koopa0/askdocs/internal/log"
	"github.com/koopa0/askdocs/internal/store"
)

// runAsk answers a single question and exits. With -store, the answer
// is grounded on the named file search store.
func runAsk(args []string) error {
	flags := flag.NewFlagSet("ask", flag.ContinueOnError)
	storeName := flags.String("store", "", "file search store to ground the answer on")
	if err := flags.Parse(args); err != nil {
		return err
	}

	question := strings.TrimSpace(strings.Join(flags.Args(), " "))
	if question == "" {
		return errors.New("usage: askdocs ask [-store <name>] <question>")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(log.Config{Level: logLevel()})

	client, err := gemini.NewClient(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing Gemini client: %w", err)
	}

	chatClient, err := chat.NewClient(client, logger)
	if err != nil {
		return fmt.Errorf("initializing chat client: %w", err)
	}

	if *storeName != "" {
		manager, err := store.NewManager(client, cfg.StorePrefix, logger)
		if err != nil {
			return fmt.Errorf("initializing store manager: %w", err)
		}
		st, err := manager.Get(ctx, *storeName)
		if err != nil {
			return err
		}
		chatClient.SetStores([]string{st.Name})
	}

	chatClient.Start()
	entry, err := chatClient.Send(ctx, question)
	if err != nil {
		return err
	}

	fmt.Println(entry.Text)
	printAskCitations(entry.Citations)
	return nil
}

func printAskCitations(c chat.Citations) {
	if c.Empty() {
		return
	}

	if len(c.Sources) > 0 {
		fmt.Fprintf(os.Stdout, "\nSources (%d):\n", len(c.Sources))
		for i, src := range c.Sources {
			title := src.Title
			if title == "" {
				title = "N/A"
			}
			fmt.Fprintf(os.Stdout, "%d. %s\n", i+1, title)
			if src.URI != "" {
				fmt.Fprintf(os.Stdout, "   URI: %s\n", src.URI)
			}
		}
	}
	if c.SupportCount > 0 {
		fmt.Fprintf(os.Stdout, "\nGrounding supports: %d segment(s) grounded\n", c.SupportCount)
	}
}
