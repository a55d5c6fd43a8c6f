package cli

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func TestCompletionScripts(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := New(io.Discard, log.InfoLevel).RootCommand()
			var buf bytes.Buffer
			root.SetOut(&buf)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), "heft") {
				t.Errorf("%s script does not mention heft", shell)
			}
		})
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestWeightFlagCompletion(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	weight, _, err := root.Find([]string{"weight"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		flag string
		want []string
	}{
		{"path", []string{"ts", "tsx", "mts", "cts", "js", "jsx", "mjs", "cjs"}},
		{"config", []string{"toml"}},
		{"graph", []string{"dot", "svg"}},
		{"output", []string{"json"}},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			complete, ok := weight.GetFlagCompletionFunc(tt.flag)
			if !ok {
				t.Fatalf("no completion registered for --%s", tt.flag)
			}
			got, directive := complete(weight, nil, "")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("--%s completions = %v, want %v", tt.flag, got, tt.want)
			}
			if directive != cobra.ShellCompDirectiveFilterFileExt {
				t.Errorf("--%s directive = %v, want FilterFileExt", tt.flag, directive)
			}
		})
	}
}
