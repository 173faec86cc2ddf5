package report

import "strings"

// span is a run of text within one rendered line. A non-empty Link makes
// the run a clickable external link.
type span struct {
	Text string
	Link string
}

// trailingPunct are characters stripped from the end of a detected URL.
// They close the surrounding sentence, they are not part of the address.
const trailingPunct = ".,;:)]"

// linkify splits a line into plain and link spans. URLs are detected as
// whitespace-delimited tokens with an http or https scheme; anything else
// passes through untouched.
func linkify(line string) []span {
	var spans []span
	plain := strings.Builder{}

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, span{Text: plain.String()})
			plain.Reset()
		}
	}

	rest := line
	for rest != "" {
		i := strings.IndexAny(rest, " \t")
		var token, sep string
		if i < 0 {
			token, rest = rest, ""
		} else {
			token, sep, rest = rest[:i], rest[i:i+1], rest[i+1:]
		}

		url, tail, ok := splitURLToken(token)
		if !ok {
			plain.WriteString(token)
			plain.WriteString(sep)
			continue
		}

		flush()
		spans = append(spans, span{Text: url, Link: url})
		plain.WriteString(tail)
		plain.WriteString(sep)
	}
	flush()

	return spans
}

// splitURLToken splits a token into a URL and its trailing punctuation.
func splitURLToken(token string) (url, tail string, ok bool) {
	if !strings.HasPrefix(token, "http://") && !strings.HasPrefix(token, "https://") {
		return "", "", false
	}
	url = strings.TrimRight(token, trailingPunct)
	host := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	if host == "" {
		return "", "", false
	}
	return url, token[len(url):], true
}
