package shell

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/koopa0/askdocs/internal/store"
)

func (s *Shell) cmdCreateStore(ctx context.Context, displayName string) {
	fmt.Fprintln(s.out, "\nCreating file search store...")

	st, err := s.stores.Create(ctx, displayName)
	if err != nil {
		s.printError(err)
		return
	}

	fmt.Fprintln(s.out, "\nStore created successfully!")
	fmt.Fprintf(s.out, "Store Name: %s\n", st.Name)
	fmt.Fprintf(s.out, "Display Name: %s\n", st.DisplayName)

	if s.confirm("\nSelect this store for chat? (y/n): ") {
		s.selectStore(st)
		fmt.Fprintf(s.out, "Selected store: %s\n", st.Name)
	}
}

func (s *Shell) cmdListStores(ctx context.Context) {
	stores, err := s.stores.List(ctx)
	if err != nil {
		s.printError(err)
		return
	}

	if len(stores) == 0 {
		fmt.Fprintln(s.out, "\nNo file search stores found.")
		return
	}

	fmt.Fprintf(s.out, "\nFile search stores (%d):\n", len(stores))
	for i, st := range stores {
		fmt.Fprintf(s.out, "\n%d. Store Name: %s\n", i+1, st.Name)
		if st.DisplayName != "" {
			fmt.Fprintf(s.out, "   Display Name: %s\n", st.DisplayName)
		}
		if !st.CreateTime.IsZero() {
			fmt.Fprintf(s.out, "   Created: %s\n", st.CreateTime.Format("2006-01-02 15:04:05"))
		}
	}
}

func (s *Shell) cmdSelectStore(ctx context.Context, name string) {
	if name == "" {
		fmt.Fprintln(s.out, "\nError: Please provide a store name")
		fmt.Fprintln(s.out, "Usage: /select <store-name>")
		return
	}

	st, err := s.stores.Get(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			fmt.Fprintf(s.out, "\nStore not found: %s\n", name)
			fmt.Fprintln(s.out, "Use '/list' to see available stores")
			return
		}
		s.printError(err)
		return
	}

	s.selectStore(st)
	fmt.Fprintf(s.out, "\nSelected store: %s\n", st.Name)
}

func (s *Shell) cmdDeleteStore(ctx context.Context, name string) {
	if name == "" {
		fmt.Fprintln(s.out, "\nError: Please provide a store name")
		fmt.Fprintln(s.out, "Usage: /delete <store-name>")
		return
	}

	fmt.Fprintf(s.out, "\nAre you sure you want to delete '%s'?\n", name)
	if !s.confirmTyped("Type 'yes' to confirm: ", "yes") {
		fmt.Fprintln(s.out, "Deletion cancelled.")
		return
	}

	if err := s.stores.Delete(ctx, name, true); err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "Deleted file search store: %s\n", name)

	if s.current != nil && s.current.Name == name {
		s.deselectStore()
		fmt.Fprintln(s.out, "Current store deselected.")
	}
}

func (s *Shell) cmdUploadFiles(ctx context.Context) {
	if s.current == nil {
		fmt.Fprintln(s.out, "\nError: No store selected. Please select a store first.")
		fmt.Fprintln(s.out, "Use '/select <store-name>' or '/create'")
		return
	}

	fmt.Fprintf(s.out, "\nUploading files from: %s\n", s.cfg.FilesDir)
	fmt.Fprintf(s.out, "To store: %s\n", s.current.Name)

	summary, err := s.stores.UploadDirectory(ctx, s.current.Name, s.cfg.FilesDir)
	if err != nil {
		s.printError(err)
		return
	}

	if summary.Total == 0 {
		fmt.Fprintf(s.out, "\nNo files found in %s\n", s.cfg.FilesDir)
		return
	}

	for _, result := range summary.Results {
		if result.Err != nil {
			fmt.Fprintf(s.out, "  failed: %s (%v)\n", filepath.Base(result.Path), result.Err)
			continue
		}
		fmt.Fprintf(s.out, "  uploaded: %s\n", filepath.Base(result.Path))
	}
	fmt.Fprintf(s.out, "\nSuccessfully uploaded %d/%d files\n", summary.Succeeded, summary.Total)
}

func (s *Shell) cmdStoreInfo() {
	if s.current == nil {
		fmt.Fprintln(s.out, "\nNo store currently selected.")
		fmt.Fprintln(s.out, "Use '/select <store-name>' to select a store")
		return
	}

	fmt.Fprintln(s.out, "\nCurrent store:")
	fmt.Fprintf(s.out, "  Store Name: %s\n", s.current.Name)
	if s.current.DisplayName != "" {
		fmt.Fprintf(s.out, "  Display Name: %s\n", s.current.DisplayName)
	}
	if !s.current.CreateTime.IsZero() {
		fmt.Fprintf(s.out, "  Created: %s\n", s.current.CreateTime.Format("2006-01-02 15:04:05"))
	}
}

func (s *Shell) cmdStartChat() {
	if s.chat.Active() {
		fmt.Fprintln(s.out, "\nA chat session is already active.")
		if !s.confirm("Reset and start new session? (y/n): ") {
			return
		}
	}

	s.chat.Start()
	fmt.Fprintf(s.out, "\nChat session started with model: %s\n", s.cfg.ModelName)

	if s.current != nil {
		fmt.Fprintf(s.out, "Using file search store: %s\n", s.current.Name)
	} else {
		fmt.Fprintln(s.out, "No file search store selected. Chat will work without file search.")
		fmt.Fprintln(s.out, "Use '/select <store-name>' to enable file search.")
	}
}

func (s *Shell) cmdResetChat() {
	if !s.chat.Active() {
		fmt.Fprintln(s.out, "\nNo active chat session to reset.")
		return
	}

	s.chat.Reset()
	fmt.Fprintln(s.out, "\nChat session reset.")
}

func (s *Shell) cmdShowHistory() {
	history := s.chat.History()
	if len(history) == 0 {
		fmt.Fprintln(s.out, "\nNo chat history available.")
		return
	}

	fmt.Fprintln(s.out, "\nChat history:")
	for _, entry := range history {
		fmt.Fprintf(s.out, "\n%s: %s\n", roleLabel(entry.Role), entry.Text)
	}
}
