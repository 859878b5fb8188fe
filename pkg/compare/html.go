package compare

import (
	"fmt"
	"os"

	"golang.org/x/net/html"
)

// equalHTML compares two HTML documents by their sequence of parse
// events. Start and end tags are recorded by tag name only, so
// attributes (their order and their values) do not take part; text is
// compared verbatim, whitespace included. Comments are excluded: tools
// like gtk-doc stamp them with a generation timestamp.
func (c *Comparator) equalHTML(a, b string) (bool, error) {
	ea, err := htmlEvents(a)
	if err != nil {
		return false, err
	}
	eb, err := htmlEvents(b)
	if err != nil {
		return false, err
	}
	if len(ea) != len(eb) {
		return false, nil
	}
	for i := range ea {
		if ea[i] != eb[i] {
			return false, nil
		}
	}
	return true, nil
}

func htmlEvents(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	z := html.NewTokenizer(f)
	var events []string
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return events, nil
		}
		if tt == html.CommentToken {
			continue
		}
		tok := z.Token()
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			events = append(events, tt.String()+":"+tok.Data)
		case html.TextToken:
			events = append(events, "text:"+tok.Data)
		default:
			events = append(events, tok.String())
		}
	}
}
