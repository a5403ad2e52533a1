package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDefaultsAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Errorf("Build() = %T, want NoopBuildHooks", Build())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	SetBuildHooks(LogHooks{Logger: log.New(&bytes.Buffer{})})
	SetRenderHooks(LogHooks{Logger: log.New(&bytes.Buffer{})})
	SetHTTPHooks(LogHooks{Logger: log.New(&bytes.Buffer{})})
	counter := &CacheCounter{}
	SetCacheHooks(counter)

	if _, ok := Build().(LogHooks); !ok {
		t.Errorf("Build() = %T after SetBuildHooks", Build())
	}
	if Cache() != counter {
		t.Error("SetCacheHooks did not register the counter")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Errorf("Render() = %T after Reset, want NoopRenderHooks", Render())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T after Reset, want NoopCacheHooks", Cache())
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	counter := &CacheCounter{}
	SetCacheHooks(counter)
	SetCacheHooks(nil)
	SetBuildHooks(nil)

	if Cache() != counter {
		t.Error("SetCacheHooks(nil) replaced the registered hooks")
	}
	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("SetBuildHooks(nil) replaced the default hooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := LogHooks{Logger: log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})}
	ctx := context.Background()

	h.OnBuildStart(ctx, "0123456789abcdef", "npm", "express")
	h.OnFetch(ctx, "0123456789abcdef", "express@4.18.2", 12*time.Millisecond, errors.New("boom"))
	h.OnRenderComplete(ctx, "nodelink", 2048, time.Millisecond, nil)
	h.OnResponse(ctx, "GET", "registry.npmjs.org", "/express", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"build start", "build=01234567", "err=boom", "render complete", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Error("build IDs should be shortened")
	}
}

func TestLogHooksQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := LogHooks{Logger: log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})}
	h.OnRequest(context.Background(), "GET", "crates.io", "/api/v1/crates/serde")
	if buf.Len() != 0 {
		t.Errorf("unexpected output at info level: %q", buf.String())
	}
}

func TestCacheCounterConcurrent(t *testing.T) {
	var c CacheCounter
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() { defer wg.Done(); c.OnCacheHit(ctx, "version") }()
		go func() { defer wg.Done(); c.OnCacheMiss(ctx, "version") }()
	}
	wg.Wait()

	if hits, misses := c.Counts(); hits != 50 || misses != 50 {
		t.Errorf("Counts() = %d, %d; want 50, 50", hits, misses)
	}
}
