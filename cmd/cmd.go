// Package cmd provides the CLI commands for askdocs.
//
// Commands:
//   - chat: Interactive chat session with file search grounding
//   - ask: One-shot question without entering the interactive loop
//
// Signal handling and graceful shutdown are implemented for all
// commands via context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
)

// Execute is the main entry point for the askdocs CLI application.
func Execute() error {
	// Initialize logger once at entry point
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(os.Args) < 2 {
		return runChat()
	}

	switch os.Args[1] {
	case "chat":
		return runChat()
	case "ask":
		return runAsk(os.Args[2:])
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("askdocs - Chat with your documents via Gemini File Search")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  askdocs              Start interactive chat mode")
	fmt.Println("  askdocs chat         Start interactive chat mode")
	fmt.Println("  askdocs ask [-store <name>] <question>")
	fmt.Println("                       Ask a single question and exit")
	fmt.Println("  askdocs --version    Show version information")
	fmt.Println("  askdocs --help       Show this help")
	fmt.Println()
	fmt.Println("Chat commands (in interactive mode):")
	fmt.Println("  /create [name]       Create a file search store")
	fmt.Println("  /list                List file search stores")
	fmt.Println("  /select <name>       Select a store for chat queries")
	fmt.Println("  /upload              Upload files from the files directory")
	fmt.Println("  /start               Start a chat session")
	fmt.Println("  /export [filename]   Export chat history as markdown")
	fmt.Println("  /help                Show all commands")
	fmt.Println("  /quit                Exit")
	fmt.Println()
	fmt.Println("Shortcuts:")
	fmt.Println("  Ctrl+D               Exit askdocs")
	fmt.Println("  Ctrl+C               Cancel and exit")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY       Required: Gemini API key")
	fmt.Println("  DEBUG                Optional: Enable debug logging")
}
