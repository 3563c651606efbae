// Package langdetect identifies the language of a file so that per-language
// marker sets can be selected. It is a thin layer over go-enry.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// sniffLimit bounds how much content is handed to enry's content strategies.
const sniffLimit = 16 << 10

// Detect returns a lowercase language identifier for the file at path with the
// given content, such as "go", "python" or "shell". Filename and extension
// matches win over content; a shebang line decides for extensionless scripts.
// Returns Text when nothing matches.
func Detect(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByFilename(path); safe && lang != "" {
		return Normalize(lang)
	}

	if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
		return Normalize(lang)
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return Normalize(lang)
	}

	// Ambiguous extensions (.h, .m, ...) fall through to enry's full strategy
	// chain, which can inspect content. Files with no extension at all are
	// not classified, since the classifier guesses on arbitrary text.
	if !hasExtension(path) {
		return Text
	}

	if lang := enry.GetLanguage(path, sniff(content)); lang != "" {
		return Normalize(lang)
	}

	return Text
}

// IsBinary reports whether content looks like binary data.
func IsBinary(content []byte) bool {
	return enry.IsBinary(sniff(content))
}

// IsVendored reports whether path lies in a conventional vendored or
// third-party location (vendor/, node_modules/, ...).
func IsVendored(path string) bool {
	return enry.IsVendor(path)
}

// IsGenerated reports whether the file looks machine-generated.
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(path, sniff(content))
}

// Normalize maps an enry language name to the identifier used in
// configuration: lowercase, with spaces replaced by dashes.
func Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return Text
	}
	return strings.ReplaceAll(strings.ToLower(lang), " ", "-")
}

func sniff(content []byte) []byte {
	if len(content) > sniffLimit {
		return content[:sniffLimit]
	}
	return content
}

func hasExtension(path string) bool {
	base := path
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.LastIndexByte(base, '.') > 0
}
