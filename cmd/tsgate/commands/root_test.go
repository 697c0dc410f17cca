package commands

import (
	"bytes"
	"testing"
)

func TestRootCommand_Help(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("root --help returned error: %v", err)
	}

	output := buf.String()
	assertContains(t, output, "tsgate")
	assertContains(t, output, "diagnostic")
}

func TestVersionCommand(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("version command returned error: %v", err)
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := map[string]bool{
		"check":     false,
		"typecheck": false,
		"lint":      false,
		"test":      false,
		"init":      false,
		"cleanup":   false,
		"version":   false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := expected[cmd.Use]; ok {
			expected[cmd.Use] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("expected subcommand %q to be registered, but it was not", name)
		}
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	flags := []string{"json", "sarif", "verbose", "no-color", "fail-fast", "cwd", "container", "explain", "skip"}

	for _, name := range flags {
		flag := rootCmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Errorf("expected global flag --%s to be registered", name)
		}
	}
}

func assertContains(t *testing.T, output, substr string) {
	t.Helper()
	if !bytes.Contains([]byte(output), []byte(substr)) {
		t.Errorf("expected output to contain %q, got:\n%s", substr, output)
	}
}
