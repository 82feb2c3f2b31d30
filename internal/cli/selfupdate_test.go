package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewSelfUpdateCmd(t *testing.T) {
	cmd := newSelfUpdateCmd()

	if cmd.Use != "self-update" {
		t.Errorf("Use = %q, want self-update", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should be set")
	}
	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
}

func TestRunSelfUpdateRefusesDevVersion(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	for _, v := range []string{"dev", ""} {
		Version = v
		err := runSelfUpdate(nil, nil)
		if err == nil {
			t.Fatalf("version %q: expected error", v)
		}
		if !strings.Contains(err.Error(), "cannot self-update a development version") {
			t.Errorf("version %q: error = %v", v, err)
		}
	}
}

func TestSelfUpdateCommandHelp(t *testing.T) {
	cmd := newSelfUpdateCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Checks for the latest release") {
		t.Errorf("help output missing long description: %q", out)
	}
}

func TestGithubRepoSlug(t *testing.T) {
	if githubRepoSlug != "4nzor/dbrowse" {
		t.Errorf("githubRepoSlug = %q", githubRepoSlug)
	}
}

func TestRootCmdWiring(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"version", "self-update"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q (have %v)", want, names)
		}
	}
}
