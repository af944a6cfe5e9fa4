package main

import (
	"path/filepath"
	"testing"
)

func TestResolveDataDir(t *testing.T) {
	if dir, _ := resolveDataDir("/tmp/flag", "/tmp/config"); dir != "/tmp/flag" {
		t.Errorf("Expected the flag to win, got %q", dir)
	}
	if dir, _ := resolveDataDir("", "/tmp/config"); dir != "/tmp/config" {
		t.Errorf("Expected the config value, got %q", dir)
	}

	t.Setenv("HOME", t.TempDir())
	dir, err := resolveDataDir("", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if filepath.Base(dir) != ".job-aggregator" {
		t.Errorf("Expected default under home, got %q", dir)
	}
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"-q", "Data Analyst", "--remote", "--country", "Spain"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v, _ := cmd.Flags().GetString("contract-type"); v != "B2B" {
		t.Errorf("Expected default contract type B2B, got %q", v)
	}
	if v, _ := cmd.Flags().GetString("query"); v != "Data Analyst" {
		t.Errorf("Unexpected query %q", v)
	}
	if v, _ := cmd.Flags().GetBool("remote"); !v {
		t.Error("Expected --remote to be set")
	}
}
