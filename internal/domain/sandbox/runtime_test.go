package sandbox

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/scivalidate/preview/internal/domain/mocks"
	"github.com/scivalidate/preview/internal/domain/transform"
)

func fixtureFetch(records map[string]string) FetchFunc {
	return func(path string) (FetchResponse, error) {
		if body, ok := records[path]; ok {
			return FetchResponse{Status: 200, Body: []byte(body)}, nil
		}
		return FetchResponse{Status: 404, Body: []byte(`{"detail":"Not found"}`)}, nil
	}
}

func newTestRuntime(records map[string]string) *Runtime {
	return New(DefaultConfig(), mocks.NewRegistry(), fixtureFetch(records))
}

func compiled(view, source string) *transform.Result {
	return &transform.Result{View: view, Source: source}
}

func TestInvokeSimpleElements(t *testing.T) {
	runtime := newTestRuntime(nil)

	tests := []struct {
		name     string
		source   string
		wantType string
	}{
		{
			name:     "plain element",
			source:   "return h('div', null, 'hello');",
			wantType: "div",
		},
		{
			name:     "element with props",
			source:   "return h('panel', { kind: 'test' }, 'body');",
			wantType: "panel",
		},
		{
			name: "local component",
			source: `function View(props) {
  return h('section', null, h('span', null, props.label));
}
return View({ label: 'nested' });`,
			wantType: "section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := runtime.Compile(compiled("View", tt.source))
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			result, err := program.Invoke(context.Background())
			if err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}

			elem, ok := result.Value.(map[string]interface{})
			if !ok {
				t.Fatalf("Invoke() value = %T, want element map", result.Value)
			}
			if elem["type"] != tt.wantType {
				t.Errorf("element type = %v, want %v", elem["type"], tt.wantType)
			}
		})
	}
}

func TestInvokeMockBinding(t *testing.T) {
	runtime := newTestRuntime(nil)

	source := `const ValidationBadge = __mocks__["ValidationBadge"];
return h(ValidationBadge, { status: 'verified' });`

	program, err := runtime.Compile(compiled("Badge", source))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	result, err := program.Invoke(context.Background())
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	elem := result.Value.(map[string]interface{})
	if elem["type"] != "badge" {
		t.Errorf("mock output type = %v, want badge", elem["type"])
	}
}

func TestInvokeEffectFetchRerender(t *testing.T) {
	runtime := newTestRuntime(map[string]string{
		"/entity/42": `{"id":42,"name":"X"}`,
	})

	source := `function View(props) {
  const [name, setName] = useState('');
  useEffect(() => {
    const res = fetch('/entity/' + props.entityId);
    if (res.ok) {
      setName(res.json().name);
    }
  }, [props.entityId]);
  return h('div', null, name);
}
return View({ entityId: '42' });`

	program, err := runtime.Compile(compiled("View", source))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	result, err := program.Invoke(context.Background())
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	if result.Passes != 2 {
		t.Errorf("Passes = %d, want 2", result.Passes)
	}

	elem := result.Value.(map[string]interface{})
	children := elem["children"].([]interface{})
	if len(children) != 1 || children[0] != "X" {
		t.Errorf("children = %v, want [X]", children)
	}
}

func TestInvokeNotFoundRendersOwnEmptyState(t *testing.T) {
	runtime := newTestRuntime(nil) // every path 404s

	source := `function View(props) {
  const [missing, setMissing] = useState(false);
  useEffect(() => {
    const res = fetch('/entity/999');
    if (!res.ok) {
      setMissing(true);
    }
  }, []);
  if (missing) {
    return h('panel', { kind: 'empty' }, 'entity not found');
  }
  return h('panel', null, 'loading');
}
return View({});`

	program, err := runtime.Compile(compiled("View", source))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	result, err := program.Invoke(context.Background())
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	elem := result.Value.(map[string]interface{})
	children := elem["children"].([]interface{})
	if len(children) != 1 || children[0] != "entity not found" {
		t.Errorf("children = %v, want [entity not found]", children)
	}
}

func TestInvokeRenderLoopIsBounded(t *testing.T) {
	runtime := newTestRuntime(nil)

	// The effect changes state on every pass; the loop must stop at
	// MaxPasses instead of spinning.
	source := `function View() {
  const [n, setN] = useState(0);
  useEffect(() => {
    setN(n + 1);
  });
  return h('div', null, String(n));
}
return View({});`

	program, err := runtime.Compile(compiled("View", source))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	result, err := program.Invoke(context.Background())
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	if result.Passes != DefaultConfig().MaxPasses {
		t.Errorf("Passes = %d, want %d", result.Passes, DefaultConfig().MaxPasses)
	}
}

func TestConsoleCapture(t *testing.T) {
	runtime := newTestRuntime(nil)

	source := `console.log('first');
console.warn('second');
console.error('third');
return h('div', null, 'done');`

	program, err := runtime.Compile(compiled("View", source))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	result, err := program.Invoke(context.Background())
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	if len(result.Console) != 3 {
		t.Fatalf("Console entries = %d, want 3", len(result.Console))
	}
	levels := []string{"log", "warn", "error"}
	for i, entry := range result.Console {
		if entry.Level != levels[i] {
			t.Errorf("entry %d level = %s, want %s", i, entry.Level, levels[i])
		}
	}
}

func TestCompileError(t *testing.T) {
	runtime := newTestRuntime(nil)

	_, err := runtime.Compile(compiled("View", "return {;"))
	if err == nil {
		t.Fatal("Compile() expected error for invalid syntax")
	}
}

func TestRuntimeErrorPropagates(t *testing.T) {
	runtime := newTestRuntime(nil)

	program, err := runtime.Compile(compiled("View", "return missingDependency();"))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := program.Invoke(context.Background()); err == nil {
		t.Fatal("Invoke() expected error for undefined reference")
	}
}

func TestDangerousGlobalsRemoved(t *testing.T) {
	runtime := newTestRuntime(nil)

	scripts := []string{
		"return require('fs');",
		"return process.exit(1);",
		"return module.exports;",
	}
	for _, script := range scripts {
		program, err := runtime.Compile(compiled("View", script))
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		result, err := program.Invoke(context.Background())
		if err == nil && result.Value != nil {
			t.Errorf("script %q executed with value %v", script, result.Value)
		}
	}
}

func TestInvokeTimeout(t *testing.T) {
	runtime := New(Config{
		Timeout:       100 * time.Millisecond,
		MaxPasses:     10,
		EnableConsole: false,
	}, mocks.NewRegistry(), fixtureFetch(nil))

	program, err := runtime.Compile(compiled("View", "while (true) {}"))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := program.Invoke(context.Background()); err == nil {
		t.Fatal("Invoke() expected timeout error")
	}
}

func TestStateDoesNotSurviveCompilations(t *testing.T) {
	runtime := newTestRuntime(nil)

	source := `function View() {
  const [n, setN] = useState(1);
  useEffect(() => {
    setN(n * 2);
  }, []);
  return h('div', null, String(n));
}
return View({});`

	render := func() string {
		program, err := runtime.Compile(compiled("View", source))
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		result, err := program.Invoke(context.Background())
		if err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		elem := result.Value.(map[string]interface{})
		return fmt.Sprint(elem["children"].([]interface{})[0])
	}

	first := render()
	second := render()
	if first != second {
		t.Errorf("renders differ: %s vs %s", first, second)
	}
	if !strings.Contains(first, "2") {
		t.Errorf("render = %s, want state settled at 2", first)
	}
}
