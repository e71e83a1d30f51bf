// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipped elements never contribute text.
var skipped = map[string]bool{
	"script":          true,
	"style":           true,
	"head":            true,
	"ce:bibliography": true,
}

// blocks end a line. Inline elements such as <sub> join their neighbours
// without a space so "Cu<sub>2</sub>O" reads "Cu2O".
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Section: true, atom.Article: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.Title: true, atom.Table: true, atom.Blockquote: true, atom.Figcaption: true,
}

// xmlBlocks are publisher XML element names (matched without namespace
// prefix) that end a line.
var xmlBlocks = map[string]bool{
	"para":          true,
	"simple-para":   true,
	"section-title": true,
	"title":         true,
	"abstract":      true,
	"caption":       true,
	"sec":           true,
}

// ExtractText returns the readable text of an HTML or XML document, one
// block per line.
func ExtractText(r io.Reader) (string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parsing markup: %w", err)
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipped[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlock(n) {
			b.WriteString("\n")
		}
	}
	walk(root)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func isBlock(n *html.Node) bool {
	if n.DataAtom != 0 {
		return blocks[n.DataAtom]
	}
	name := n.Data
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	return xmlBlocks[name]
}
