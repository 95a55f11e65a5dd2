package render

import (
	"html/template"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedTags are the only elements that survive Sanitize. Attributes are always dropped.
var allowedTags = map[atom.Atom]bool{
	atom.P:      true,
	atom.B:      true,
	atom.I:      true,
	atom.Em:     true,
	atom.Strong: true,
	atom.Br:     true,
}

// skippedTags have their content dropped along with the tag itself.
var skippedTags = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Iframe: true,
	atom.Object: true,
	atom.Embed:  true,
}

// Sanitize reduces an upstream HTML summary to a small set of inline
// formatting tags. Text is re-escaped, other tags are removed but their text
// is kept, and the content of script-like elements is discarded.
func Sanitize(fragment string) template.HTML {
	if fragment == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed remainder, which is dropped
			return template.HTML(b.String())

		case html.TextToken:
			if skipDepth == 0 {
				b.WriteString(html.EscapeString(string(z.Text())))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skippedTags[a] && tt == html.StartTagToken {
				skipDepth++
				continue
			}
			if skipDepth == 0 && allowedTags[a] {
				if a == atom.Br {
					b.WriteString("<br>")
				} else {
					b.WriteString("<" + a.String() + ">")
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skippedTags[a] {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			if skipDepth == 0 && allowedTags[a] && a != atom.Br {
				b.WriteString("</" + a.String() + ">")
			}
		}
	}
}
