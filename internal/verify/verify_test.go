package verify

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckMissingBinary(t *testing.T) {
	v := NewWithRunner(func(string, ...string) error {
		t.Fatal("runner should not be called for a missing binary")
		return nil
	})

	missing := filepath.Join(t.TempDir(), "bugster")
	err := v.Check(missing)
	if err == nil {
		t.Fatal("Check() error = nil, want missing binary error")
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q should name the path %s", err, missing)
	}
}

func TestCheckRunFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bugster")
	if err := os.WriteFile(path, []byte("stub"), 0755); err != nil {
		t.Fatal(err)
	}

	v := NewWithRunner(func(string, ...string) error {
		return errors.New("exit status 1")
	})

	err := v.Check(path)
	if err == nil {
		t.Fatal("Check() error = nil, want verification failure")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should name the path %s", err, path)
	}
}

func TestCheckSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bugster")
	if err := os.WriteFile(path, []byte("stub"), 0755); err != nil {
		t.Fatal(err)
	}

	var gotArgs []string
	v := NewWithRunner(func(p string, args ...string) error {
		gotArgs = append([]string{p}, args...)
		return nil
	})

	if err := v.Check(path); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(gotArgs) != 2 || gotArgs[1] != "--version" {
		t.Errorf("ran %v, want [path --version]", gotArgs)
	}
}
