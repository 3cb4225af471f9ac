package cmd

import (
	"os"
	"strings"
	"testing"
)

func TestExecuteUnknownCommand(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"askdocs", "frobnicate"}

	err := Execute()
	if err == nil {
		t.Fatal("Execute() error = nil, want unknown command error")
	}
	if !strings.Contains(err.Error(), "unknown command: frobnicate") {
		t.Errorf("Execute() error = %v, want unknown command", err)
	}
}

func TestRunAskRequiresQuestion(t *testing.T) {
	err := runAsk(nil)
	if err == nil {
		t.Fatal("runAsk() error = nil, want usage error")
	}
	if !strings.Contains(err.Error(), "usage: askdocs ask") {
		t.Errorf("runAsk() error = %v, want usage message", err)
	}
}

func TestRunAskRejectsBadFlag(t *testing.T) {
	if err := runAsk([]string{"-bogus"}); err == nil {
		t.Fatal("runAsk() with undefined flag should fail")
	}
}
