package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures Make.
type Option func(*config)

type config struct {
	maxLength    int
	separator    string
	replacements map[string]string
	suffixLength int
}

// MaxLength caps the slug at n runes. Zero means no limit.
func MaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// Separator replaces the default "-" separator.
func Separator(s string) Option {
	return func(c *config) { c.separator = s }
}

// Replace applies literal replacements before slugification, e.g. {"&": "and"}.
func Replace(pairs map[string]string) Option {
	return func(c *config) { c.replacements = pairs }
}

// WithSuffix appends a random lowercase alphanumeric suffix of the given length.
func WithSuffix(length int) Option {
	return func(c *config) { c.suffixLength = length }
}

// Letters without a Unicode decomposition that still have an obvious ASCII form.
var folds = map[rune]string{
	'ß': "ss", 'æ': "ae", 'œ': "oe", 'ø': "o", 'ł': "l", 'đ': "d", 'ð': "d", 'þ': "th", 'ı': "i",
}

// Make lowercases s, strips diacritics and joins the remaining ASCII letter
// and digit runs with the separator.
func Make(s string, opts ...Option) string {
	cfg := &config{separator: "-"}
	for _, opt := range opts {
		opt(cfg)
	}

	for old, repl := range cfg.replacements {
		s = strings.ReplaceAll(s, old, repl)
	}

	words := strings.FieldsFunc(fold(s), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})

	limit := cfg.maxLength
	suffix := ""
	if cfg.suffixLength > 0 {
		n := cfg.suffixLength
		if limit > 0 && n > limit {
			n = limit
		}
		suffix = randomSuffix(n)
		if limit > 0 {
			limit -= n + len(cfg.separator)
			if limit <= 0 {
				return suffix
			}
		}
	}

	result := join(words, cfg.separator, limit)
	switch {
	case suffix == "":
		return result
	case result == "":
		return suffix
	default:
		return result + cfg.separator + suffix
	}
}

// fold lowercases s and maps accented letters to their ASCII base.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		out = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if repl, ok := folds[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// join concatenates words with sep, truncating to limit runes (0 = unlimited)
// without leaving a trailing separator.
func join(words []string, sep string, limit int) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			if limit > 0 && b.Len()+len(sep) >= limit {
				break
			}
			b.WriteString(sep)
		}
		if limit > 0 && b.Len()+len(w) > limit {
			b.WriteString(w[:limit-b.Len()])
			break
		}
		b.WriteString(w)
	}
	return b.String()
}

func randomSuffix(n int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}
