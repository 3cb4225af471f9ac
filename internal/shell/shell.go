// Package shell implements the interactive command loop: it parses
// slash commands, dispatches to the store manager and chat client,
// renders results, and exports transcripts.
//
// The loop is single-threaded and synchronous: one command runs to
// completion before the next line is read. Recoverable errors are
// printed and the loop continues; only explicit quit or end of input
// ends it.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/koopa0/askdocs/internal/chat"
	"github.com/koopa0/askdocs/internal/config"
	"github.com/koopa0/askdocs/internal/store"
	"github.com/koopa0/askdocs/internal/ui"
)

// Shell ties the store manager and chat client to a line-oriented
// terminal session.
type Shell struct {
	cfg     *config.Config
	stores  *store.Manager
	chat    *chat.Client
	in      *bufio.Scanner
	out     io.Writer
	md      *markdownRenderer
	logger  *slog.Logger
	version string

	current  *store.Store
	quitting bool

	// Indirections for tests: time source and current-store state file.
	now        func() time.Time
	loadState  func() (string, error)
	saveState  func(string) error
	clearState func() error
}

// Option configures a Shell.
type Option func(*Shell)

// WithClock overrides the time source used for export filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// WithStateFuncs overrides current-store state persistence. Tests use
// this to stay out of the real home directory.
func WithStateFuncs(load func() (string, error), save func(string) error, clear func() error) Option {
	return func(s *Shell) {
		s.loadState = load
		s.saveState = save
		s.clearState = clear
	}
}

// New creates a Shell reading commands from in and writing to out.
func New(cfg *config.Config, stores *store.Manager, chatClient *chat.Client,
	in io.Reader, out io.Writer, version string, logger *slog.Logger, opts ...Option) (*Shell, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}
	if stores == nil {
		return nil, errors.New("store manager is required")
	}
	if chatClient == nil {
		return nil, errors.New("chat client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Shell{
		cfg:        cfg,
		stores:     stores,
		chat:       chatClient,
		in:         bufio.NewScanner(in),
		out:        out,
		md:         newMarkdownRenderer(defaultRenderWidth),
		logger:     logger,
		version:    version,
		now:        time.Now,
		loadState:  store.LoadCurrent,
		saveState:  store.SaveCurrent,
		clearState: store.ClearCurrent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run starts the interactive loop and blocks until quit or EOF.
func (s *Shell) Run(ctx context.Context) error {
	s.printWelcome()
	s.restoreCurrentStore(ctx)

	for !s.quitting {
		fmt.Fprint(s.out, "\nYou: ")
		if !s.in.Scan() {
			// EOF (Ctrl+D) ends the session like /quit.
			fmt.Fprintln(s.out)
			break
		}

		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			s.handleCommand(ctx, line)
		} else {
			s.handleMessage(ctx, line)
		}

		if ctx.Err() != nil {
			break
		}
	}

	fmt.Fprintln(s.out, "\nGoodbye!")
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// handleCommand dispatches one slash command. The remainder of the
// line after the command token is a single free-form argument.
func (s *Shell) handleCommand(ctx context.Context, line string) {
	cmd, args := splitCommand(line)

	switch cmd {
	case "/help":
		s.printHelp()
	case "/quit", "/exit":
		s.quitting = true
	case "/create", "/create-store":
		s.cmdCreateStore(ctx, args)
	case "/list", "/list-stores":
		s.cmdListStores(ctx)
	case "/select", "/select-store":
		s.cmdSelectStore(ctx, args)
	case "/delete", "/delete-store":
		s.cmdDeleteStore(ctx, args)
	case "/upload", "/upload-files":
		s.cmdUploadFiles(ctx)
	case "/store", "/store-info":
		s.cmdStoreInfo()
	case "/start", "/start-chat":
		s.cmdStartChat()
	case "/reset", "/reset-chat":
		s.cmdResetChat()
	case "/history":
		s.cmdShowHistory()
	case "/export", "/export-chat":
		s.cmdExportChat(args)
	case "/version":
		fmt.Fprintf(s.out, "askdocs %s (model: %s)\n", s.version, s.cfg.ModelName)
	default:
		fmt.Fprintf(s.out, "Unknown command: %s\n", cmd)
		fmt.Fprintln(s.out, "Type '/help' for available commands")
	}
}

// splitCommand separates the command token from its argument string.
func splitCommand(line string) (cmd, args string) {
	cmd, args, _ = strings.Cut(line, " ")
	return cmd, strings.TrimSpace(args)
}

// handleMessage sends free-form input as a chat message.
func (s *Shell) handleMessage(ctx context.Context, text string) {
	if !s.chat.Active() {
		fmt.Fprintln(s.out, "\nPlease start a chat session first using '/start'")
		return
	}

	if s.current == nil {
		fmt.Fprintln(s.out, "\nWarning: No file search store selected. Using chat without file search.")
		fmt.Fprintln(s.out, "Use '/select <store-name>' to enable file search.")
	}

	entry, err := s.chat.Send(ctx, text)
	if err != nil {
		s.printError(err)
		return
	}

	fmt.Fprintf(s.out, "\nAssistant: %s\n", s.md.Render(entry.Text))
	s.printCitations(entry.Citations)
}

// restoreCurrentStore reselects the store a previous run saved, if it
// still exists remotely.
func (s *Shell) restoreCurrentStore(ctx context.Context) {
	name, err := s.loadState()
	if err != nil {
		s.logger.Warn("failed to load current store state", "error", err)
		return
	}
	if name == "" {
		return
	}

	st, err := s.stores.Get(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			if clearErr := s.clearState(); clearErr != nil {
				s.logger.Warn("failed to clear stale store state", "error", clearErr)
			}
			return
		}
		s.logger.Warn("failed to validate saved store", "name", name, "error", err)
		return
	}

	s.selectStore(st)
	fmt.Fprintf(s.out, "Restored store from previous session: %s\n", st.Name)
}

// selectStore makes st the current store for uploads and chat grounding.
func (s *Shell) selectStore(st store.Store) {
	s.current = &st
	s.chat.SetStores([]string{st.Name})
	if err := s.saveState(st.Name); err != nil {
		s.logger.Warn("failed to save current store state", "error", err)
	}
}

// deselectStore clears the current store selection.
func (s *Shell) deselectStore() {
	s.current = nil
	s.chat.SetStores(nil)
	if err := s.clearState(); err != nil {
		s.logger.Warn("failed to clear current store state", "error", err)
	}
}

// confirm prints a y/n prompt and reads one line of input.
func (s *Shell) confirm(prompt string) bool {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y"
}

// confirmTyped requires the user to type an exact word, used for
// destructive operations.
func (s *Shell) confirmTyped(prompt, word string) bool {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return false
	}
	return strings.ToLower(strings.TrimSpace(s.in.Text())) == word
}

func (s *Shell) printWelcome() {
	ui.PrintTo(s.out)
	fmt.Fprintf(s.out, "Model: %s\n", s.cfg.ModelName)
	fmt.Fprintf(s.out, "Files Directory: %s\n", s.cfg.FilesDir)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Type '/help' for available commands")
	fmt.Fprintln(s.out, "Type '/quit' to exit")
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "\nAvailable commands:")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "File search store management:")
	fmt.Fprintln(s.out, "  /create [name]           Create a new file search store")
	fmt.Fprintln(s.out, "  /list                    List all file search stores")
	fmt.Fprintln(s.out, "  /select <name>           Select a store for chat queries")
	fmt.Fprintln(s.out, "  /delete <name>           Delete a file search store")
	fmt.Fprintln(s.out, "  /upload                  Upload files from the files directory")
	fmt.Fprintln(s.out, "  /store                   Show current store information")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Chat commands:")
	fmt.Fprintln(s.out, "  /start                   Start a new chat session")
	fmt.Fprintln(s.out, "  /reset                   Reset the current chat session")
	fmt.Fprintln(s.out, "  /history                 Show chat history")
	fmt.Fprintln(s.out, "  /export [filename]       Export chat history as markdown")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "General:")
	fmt.Fprintln(s.out, "  /help                    Show this help message")
	fmt.Fprintln(s.out, "  /version                 Show version information")
	fmt.Fprintln(s.out, "  /quit or /exit           Exit the application")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Commands support both short (/create) and long (/create-store) forms.")
	fmt.Fprintln(s.out, "To chat, simply type your message without a command prefix.")
}

func (s *Shell) printError(err error) {
	fmt.Fprintf(s.out, "\n%s\n", errorStyle.Render("Error: "+err.Error()))
}
