package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "__start_sectionflow"},
		{"zsh", "#compdef sectionflow"},
		{"fish", "complete -c sectionflow"},
		{"powershell", "Register-ArgumentCompleter"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out := captureStdout(t)
			if err := execute(t, "completion", tt.shell); err != nil {
				t.Fatalf("completion %s: %v", tt.shell, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("script missing %q", tt.want)
			}
		})
	}

	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestAlignmentFlagCompletion(t *testing.T) {
	for _, sub := range []string{"layout", "preview"} {
		t.Run(sub, func(t *testing.T) {
			var buf bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetOut(&buf)
			root.SetErr(io.Discard)
			root.SetArgs([]string{"__complete", sub, "--alignment", ""})
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}
			for _, want := range []string{"leading", "center", "trailing"} {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("completions missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
