package main

import (
	"testing"
)

func TestNewCLIApp_Commands(t *testing.T) {
	app := newCLIApp(t.TempDir())

	want := map[string]bool{"serve": false, "export": false, "purge-sessions": false}
	for _, cmd := range app.Commands {
		if _, ok := want[cmd.Name]; ok {
			want[cmd.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q missing", name)
		}
	}
}

func TestExportCommand(t *testing.T) {
	baseDir := t.TempDir()
	app := newCLIApp(baseDir)

	if err := app.Run([]string{"memories", "export"}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
}

func TestExportCommand_BadCategory(t *testing.T) {
	app := newCLIApp(t.TempDir())

	err := app.Run([]string{"memories", "export", "--category", "epic"})
	if err == nil {
		t.Error("export accepted unknown category")
	}
}

func TestPurgeSessionsCommand(t *testing.T) {
	app := newCLIApp(t.TempDir())

	if err := app.Run([]string{"memories", "purge-sessions"}); err != nil {
		t.Fatalf("purge-sessions failed: %v", err)
	}
}
