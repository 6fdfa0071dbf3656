package utils

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractImageSources returns the src of every <img> in an HTML fragment, in document order.
func ExtractImageSources(fragment string) []string {
	if fragment == "" {
		return nil
	}
	var out []string
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way keep what was found.
			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.Img {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == "src" && strings.TrimSpace(a.Val) != "" {
					out = append(out, strings.TrimSpace(a.Val))
				}
			}
		}
	}
}

// PlainText flattens an HTML document to text for the plain part of emails.
// Block elements become line breaks and runs of blank lines collapse.
func PlainText(doc string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(doc))
	skip := 0
loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			break loop
		case html.StartTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Style, atom.Script, atom.Title:
				skip++
			case atom.Br, atom.P, atom.Div, atom.Tr, atom.Li, atom.H1, atom.H2, atom.H3:
				b.WriteString("\n")
			}
		case html.EndTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Style, atom.Script, atom.Title:
				if skip > 0 {
					skip--
				}
			case atom.P, atom.Div, atom.Tr, atom.H1, atom.H2, atom.H3:
				b.WriteString("\n")
			case atom.Td, atom.Th:
				b.WriteString(" ")
			}
		case html.SelfClosingTagToken:
			if z.Token().DataAtom == atom.Br {
				b.WriteString("\n")
			}
		case html.TextToken:
			if skip == 0 {
				b.WriteString(collapseSpace(string(z.Text())))
			}
		}
	}

	var lines []string
	blank := false
	for _, line := range strings.Split(b.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(lines) > 0 {
				lines = append(lines, "")
			}
			blank = true
			continue
		}
		blank = false
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// collapseSpace squeezes whitespace runs to one space, keeping a single
// leading or trailing space so adjacent inline text does not run together.
func collapseSpace(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(words, " ")
	if strings.TrimLeft(s, " \t\r\n") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\r\n") != s {
		out += " "
	}
	return out
}
