package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// Mode selects the tag allow-list.
type Mode int

const (
	// Plain allows no tags at all.
	Plain Mode = iota
	// Inline allows basic formatting but no line breaks.
	Inline
	// Rich allows basic formatting plus paragraphs and line breaks.
	Rich
)

var inlineTags = map[string]bool{
	"b": true, "i": true, "u": true, "strikethrough": true, "strong": true, "small": true,
	"em": true, "mark": true, "ins": true, "del": true, "sub": true, "sup": true,
}

var richOnlyTags = map[string]bool{"br": true, "p": true}

// Content of these tags is dropped together with the tag.
var nonTextTags = map[string]bool{
	"script": true, "style": true, "textarea": true, "option": true, "noscript": true,
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Func is the sanitizer contract the filter and search engines depend on.
type Func func(s string, mode Mode) string

func allowed(mode Mode, tag string) bool {
	switch mode {
	case Inline:
		return inlineTags[tag]
	case Rich:
		return inlineTags[tag] || richOnlyTags[tag]
	}
	return false
}

// String strips every tag not allowed by mode, keeping the text inside
// removed tags. Attributes are always dropped.
func String(s string, mode Mode) string {
	if s == "" {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.WriteString(textEscaper.Replace(string(z.Text())))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if nonTextTags[tag] {
				if tt == html.StartTagToken {
					skip++
				}
				continue
			}
			if skip > 0 || !allowed(mode, tag) {
				continue
			}
			if tt == html.SelfClosingTagToken || tag == "br" {
				b.WriteString("<" + tag + " />")
			} else {
				b.WriteString("<" + tag + ">")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if nonTextTags[tag] {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip == 0 && allowed(mode, tag) && tag != "br" {
				b.WriteString("</" + tag + ">")
			}
		}
	}
}
