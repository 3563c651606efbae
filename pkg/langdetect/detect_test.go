package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gofold/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{
			name:     "go by extension",
			path:     "cmd/main.go",
			content:  "package main\n",
			expected: "go",
		},
		{
			name:     "python by extension",
			path:     "tools/gen.py",
			content:  "print('hi')\n",
			expected: "python",
		},
		{
			name:     "ruby by extension",
			path:     "lib/task.rb",
			content:  "puts 'hi'\n",
			expected: "ruby",
		},
		{
			name:     "dockerfile by filename",
			path:     "build/Dockerfile",
			content:  "FROM alpine\n",
			expected: "dockerfile",
		},
		{
			name:     "makefile by filename",
			path:     "Makefile",
			content:  "all:\n\ttrue\n",
			expected: "makefile",
		},
		{
			name:     "shell by shebang",
			path:     "scripts/run",
			content:  "#!/bin/bash\necho hello\n",
			expected: "shell",
		},
		{
			name:     "python by shebang",
			path:     "scripts/tool",
			content:  "#!/usr/bin/env python3\nprint('hello')\n",
			expected: "python",
		},
		{
			name:     "extensionless without shebang",
			path:     "NOTES",
			content:  "some words\n",
			expected: "text",
		},
		{
			name:     "empty path and content",
			path:     "",
			content:  "",
			expected: "text",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, langdetect.Detect(testCase.path, []byte(testCase.content)))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "go", langdetect.Normalize("Go"))
	assert.Equal(t, "c#", langdetect.Normalize("C#"))
	assert.Equal(t, "vim-script", langdetect.Normalize("Vim Script"))
	assert.Equal(t, "text", langdetect.Normalize("  "))
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	assert.False(t, langdetect.IsBinary([]byte("plain text\n")))
	assert.True(t, langdetect.IsBinary([]byte{0x7f, 'E', 'L', 'F', 0x00, 0x01, 0x02}))
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsVendored("vendor/github.com/foo/bar.go"))
	assert.True(t, langdetect.IsVendored("web/node_modules/pkg/index.js"))
	assert.False(t, langdetect.IsVendored("internal/cli/root.go"))
}
