package component

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}

func render(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	err := Analytics().Render(context.Background(), &buf)
	require.NoError(t, err)

	return buf.String()
}

func TestAnalytics_RendersHeadingAndText(t *testing.T) {
	out := render(t)

	assert.Contains(t, out, `<h2 class="text-2xl font-bold mb-4 text-[#27aae2]">Analytics</h2>`)
	assert.Contains(t, out, `<p class="text-gray-700 dark:text-gray-300">Analytics dashboard content will appear here.</p>`)
	assert.True(t, strings.HasPrefix(out, `<div class="p-6">`))
	assert.True(t, strings.HasSuffix(out, `</div>`))
	assert.Equal(t, `<div class="p-6">`+
		`<h2 class="text-2xl font-bold mb-4 text-[#27aae2]">Analytics</h2>`+
		`<p class="text-gray-700 dark:text-gray-300">Analytics dashboard content will appear here.</p>`+
		`</div>`, out)
}

func TestAnalytics_Idempotent(t *testing.T) {
	first := render(t)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, render(t))
	}
}

func TestAnalytics_ConcurrentRenders(t *testing.T) {
	want := render(t)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var buf bytes.Buffer
			if err := Analytics().Render(context.Background(), &buf); err == nil {
				results[i] = buf.String()
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestAnalytics_PropagatesWriteError(t *testing.T) {
	err := Analytics().Render(context.Background(), failingWriter{})
	assert.EqualError(t, err, "write failed")
}

func TestPage_WrapsBodyAndEscapesTitle(t *testing.T) {
	var buf bytes.Buffer
	err := Page("Partner <Analytics>", Analytics()).Render(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.ToLower(out), "<!doctype html>"))
	assert.Contains(t, out, "<title>Partner &lt;Analytics&gt;</title>")
	assert.Contains(t, out, "<body>"+render(t)+"</body>")
}

func TestError_EscapesText(t *testing.T) {
	var buf bytes.Buffer
	err := Error(404, "Not found", "<script>").Render(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, ">404<")
	assert.Contains(t, out, ">Not found</h2>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, `role="alert"`)
	assert.NotContains(t, out, "<script>")
}
