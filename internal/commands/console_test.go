// internal/commands/console_test.go
package agroserve

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agrisage/agroserve/mcp/tools"
)

// fakeCaller implements toolCaller and records the last invocation.
type fakeCaller struct {
	defs     []tools.Definition
	lastName string
	lastArgs map[string]any
	result   string
	err      error
}

func (f *fakeCaller) Tools() []tools.Definition { return f.defs }

func (f *fakeCaller) CallTool(_ context.Context, name string, args map[string]any) (string, error) {
	f.lastName = name
	f.lastArgs = args
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		defs:   tools.NewRegistry(nil).Definitions(),
		result: "Current weather in Nagpur:\nTemperature: 31°C",
	}
}

// TestConsole_StateTransitions_And_View covers the console state machine and view
// rendering: tool selection, query submission, result display, and returning to
// the tool list.
func TestConsole_StateTransitions_And_View(t *testing.T) {
	caller := newFakeCaller()
	m := initialConsoleModel(context.Background(), caller)

	if len(m.toolList.Items()) != 3 {
		t.Fatalf("expected 3 tools in selector, got %d", len(m.toolList.Items()))
	}

	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*consoleModel)
	if m.state != viewConsole {
		t.Fatalf("expected console view after selecting a tool; got %v", m.state)
	}
	if m.selectedTool.Name != tools.CurrentWeatherName {
		t.Fatalf("expected first tool selected; got %s", m.selectedTool.Name)
	}
	if !strings.Contains(m.textArea.Placeholder, "city") {
		t.Fatalf("expected placeholder to name the primary argument; got %q", m.textArea.Placeholder)
	}

	m.textArea.SetValue("Nagpur")
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*consoleModel)
	if !m.isLoading {
		t.Fatalf("expected loading after submitting a query")
	}
	if len(m.transcript) == 0 || m.transcript[len(m.transcript)-1].role != roleUser {
		t.Fatalf("expected last transcript entry to be the query; transcript=%v", m.transcript)
	}

	m2, _ = m.Update(callDoneMsg{text: caller.result})
	m = m2.(*consoleModel)
	if m.isLoading {
		t.Fatalf("expected not loading after call completed")
	}
	if m.transcript[len(m.transcript)-1].role != roleServer {
		t.Fatalf("expected server entry after call completed; transcript=%v", m.transcript)
	}

	out := m.View()
	if !strings.Contains(out, "You:") || !strings.Contains(out, "Server:") {
		t.Fatalf("expected roles in view output; got: %s", out)
	}
	if !strings.Contains(out, tools.CurrentWeatherName) {
		t.Fatalf("expected tool name in header; got: %s", out)
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = m2.(*consoleModel)
	if m.state != viewToolSelector {
		t.Fatalf("expected tab to return to the tool selector; got %v", m.state)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command on esc")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected esc to quit")
	}
}

// TestConsoleParseErrorStaysInTranscript verifies malformed JSON input is
// reported inline without firing a call.
func TestConsoleParseErrorStaysInTranscript(t *testing.T) {
	caller := newFakeCaller()
	m := initialConsoleModel(context.Background(), caller)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*consoleModel)

	m.textArea.SetValue(`{"city": `)
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*consoleModel)

	if m.isLoading {
		t.Fatalf("expected no call for malformed input")
	}
	if caller.lastName != "" {
		t.Fatalf("expected no tool invocation, got %s", caller.lastName)
	}
	last := m.transcript[len(m.transcript)-1]
	if last.role != roleError || !strings.Contains(last.text, "invalid JSON") {
		t.Fatalf("expected inline JSON error; got %+v", last)
	}
}

func TestCallToolCmd(t *testing.T) {
	caller := newFakeCaller()
	cmd := callToolCmd(context.Background(), caller, tools.CurrentWeatherName, map[string]any{"city": "Nagpur"})

	msg := cmd()
	done, ok := msg.(callDoneMsg)
	if !ok {
		t.Fatalf("expected callDoneMsg, got %T", msg)
	}
	if done.text != caller.result {
		t.Fatalf("unexpected result text: %q", done.text)
	}
	if caller.lastName != tools.CurrentWeatherName || caller.lastArgs["city"] != "Nagpur" {
		t.Fatalf("unexpected invocation: name=%s args=%v", caller.lastName, caller.lastArgs)
	}

	caller.err = errors.New("session closed")
	msg = callToolCmd(context.Background(), caller, tools.CurrentWeatherName, nil)()
	if _, ok := msg.(callErr); !ok {
		t.Fatalf("expected callErr, got %T", msg)
	}
}

func TestBuildToolArgs(t *testing.T) {
	registry := tools.NewRegistry(nil)
	weather, _ := registry.Definition(tools.CurrentWeatherName)
	posts, _ := registry.Definition(tools.PlaceholderPostsName)
	pesticide, _ := registry.Definition(tools.PesticideSeedInfoName)

	tests := []struct {
		name  string
		def   tools.Definition
		input string
		want  map[string]any
	}{
		{
			name:  "bare value maps to required argument",
			def:   weather,
			input: "Nagpur",
			want:  map[string]any{"city": "Nagpur"},
		},
		{
			name:  "bare integer coerced for integer argument",
			def:   posts,
			input: "3",
			want:  map[string]any{"limit": 3},
		},
		{
			name:  "bare value maps to first optional argument",
			def:   pesticide,
			input: "citrus psylla",
			want:  map[string]any{"query": "citrus psylla"},
		},
		{
			name:  "JSON object passes through",
			def:   weather,
			input: `{"city": "Pune"}`,
			want:  map[string]any{"city": "Pune"},
		},
		{
			name:  "empty input means no arguments",
			def:   posts,
			input: "",
			want:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildToolArgs(tt.def, tt.input)
			if err != nil {
				t.Fatalf("buildToolArgs(%q): %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("buildToolArgs(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}

	if _, err := buildToolArgs(weather, `{"city": `); err == nil {
		t.Fatalf("expected error for malformed JSON input")
	}
}

func TestPrimaryArgument(t *testing.T) {
	name, typeName, ok := primaryArgument(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"limit": map[string]any{"type": "integer"},
			"city":  map[string]any{"type": "string"},
		},
		"required": []any{"city"},
	})
	if !ok || name != "city" || typeName != "string" {
		t.Fatalf("expected required argument to win: %s %s %v", name, typeName, ok)
	}

	name, typeName, ok = primaryArgument(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"limit": map[string]any{"type": "integer"},
			"query": map[string]any{"type": "string"},
		},
	})
	if !ok || name != "limit" || typeName != "integer" {
		t.Fatalf("expected first property by name: %s %s %v", name, typeName, ok)
	}

	if _, _, ok := primaryArgument(map[string]any{"type": "object"}); ok {
		t.Fatalf("expected no primary argument for empty schema")
	}
}
