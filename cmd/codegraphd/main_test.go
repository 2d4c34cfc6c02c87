package main

import "testing"

func TestValidateFormat(t *testing.T) {
	cases := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"text", false},
		{"yaml", true},
		{"", true},
	}
	for _, c := range cases {
		err := validateFormat(c.format)
		if c.wantErr && err == nil {
			t.Errorf("validateFormat(%q): expected error, got nil", c.format)
		}
		if !c.wantErr && err != nil {
			t.Errorf("validateFormat(%q): unexpected error: %v", c.format, err)
		}
	}
}

func TestSearchSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range searchCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"symbols", "references", "calls"} {
		if !names[want] {
			t.Errorf("search subcommand %q not registered", want)
		}
	}
}

func TestRootSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"search", "ast", "find-ast", "complete", "lookup", "labels"} {
		if !names[want] {
			t.Errorf("root subcommand %q not registered", want)
		}
	}
}
