package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "portfolio.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, compilerModule)

	if len(provider.requested) != 1 || provider.requested[0] != compilerModule {
		t.Fatalf("expected module %s, got %v", compilerModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != compilerModule {
		t.Fatalf("expected module field %s, got %v", compilerModule, got)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestWithStepContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	WithStepContext(rec, "posts", " ", "hello-world")

	if len(rec.fields) != 1 {
		t.Fatalf("expected a single WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldStep] != "posts" || fields[fieldRecord] != "hello-world" {
		t.Fatalf("unexpected fields: %#v", fields)
	}
	if _, ok := fields[fieldSource]; ok {
		t.Fatalf("expected blank source to be dropped: %#v", fields)
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"run": 1})
	ctx = ContextWithFields(ctx, map[string]any{"step": "media"})

	fields := ContextFields(ctx)
	if fields["run"] != 1 || fields["step"] != "media" {
		t.Fatalf("expected merged fields, got %#v", fields)
	}

	fields["run"] = 2
	if ContextFields(ctx)["run"] != 1 {
		t.Fatal("expected ContextFields to return a copy")
	}
}
