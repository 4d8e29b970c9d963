package commands

import (
	"errors"
	"testing"
)

func TestParseAdd(t *testing.T) {
	cmd, err := Parse("/add Fix login redirect")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Type != TypeAdd || cmd.Add == nil {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Add.Title != "Fix login redirect" {
		t.Fatalf("unexpected title: %q", cmd.Add.Title)
	}
}

func TestParseAddRequiresTitle(t *testing.T) {
	_, err := Parse("add   ")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestParseFilterTokens(t *testing.T) {
	cmd, err := Parse("filter status:pending priority:high")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Filter.Status != "pending" || cmd.Filter.Priority != "high" {
		t.Fatalf("unexpected filter: %+v", cmd.Filter)
	}

	cmd, err = Parse("filter clear")
	if err != nil {
		t.Fatalf("parse clear: %v", err)
	}
	if !cmd.Filter.Clear {
		t.Fatal("expected clear flag")
	}

	_, err = Parse("filter tag:infra")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument for unknown token, got %v", err)
	}
}

func TestParseSortKeys(t *testing.T) {
	for _, key := range []string{"due", "priority", "title", "none"} {
		cmd, err := Parse("sort " + key)
		if err != nil {
			t.Fatalf("sort %s: %v", key, err)
		}
		if cmd.Sort.Key != key {
			t.Fatalf("unexpected key: %q", cmd.Sort.Key)
		}
	}
	if _, err := Parse("sort created"); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
}

func TestParseUnknownAndEmpty(t *testing.T) {
	var cmdErr *CommandError
	_, err := Parse("  ")
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty_input, got %v", err)
	}
	_, err = Parse("snooze t1 1h")
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown_command, got %v", err)
	}
}

func TestExecuteRoutesToHandler(t *testing.T) {
	called := ""
	handlers := Handlers{
		Add: func(args AddArgs) (Result, error) {
			called = "add:" + args.Title
			return Result{Message: "task created"}, nil
		},
		Logout: func() (Result, error) {
			called = "logout"
			return Result{}, nil
		},
	}

	cmd, _ := Parse("add Ship it")
	res, err := Execute(cmd, handlers)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if called != "add:Ship it" || res.Message != "task created" {
		t.Fatalf("handler not routed: called=%q res=%+v", called, res)
	}

	cmd, _ = Parse("logout")
	if _, err := Execute(cmd, handlers); err != nil {
		t.Fatalf("execute logout: %v", err)
	}
	if called != "logout" {
		t.Fatalf("logout handler not routed: %q", called)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, _ := Parse("refresh")
	_, err := Execute(cmd, Handlers{})
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler_missing, got %v", err)
	}
}
