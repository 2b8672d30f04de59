// Package importer reads nested lists from HTML into sequences that a
// model.Store can insert with AddSequence.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Link is a list entry pointing somewhere.
type Link struct {
	Title string
	URL   string
	Added time.Time // zero if unknown
}

func (l Link) String() string {
	return l.Title
}

// ParseHTML reads a Netscape bookmark file or plain nested <ul>/<ol> lists.
// Folder names (<H3>) and list item texts become strings, anchors with an
// href become Links. Each nested list follows its parent entry as a []any.
func ParseHTML(r io.Reader) ([]any, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var out []any
	// pendingFolder is set after an H3 until the DL holding its contents.
	pendingFolder := false

	var parse func(n *html.Node, out *[]any)
	parse = func(n *html.Node, out *[]any) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				if name := getTextContent(n); name != "" {
					*out = append(*out, name)
					pendingFolder = true
				}
				return // Don't recurse into H3

			case "a":
				pendingFolder = false
				if link, ok := parseLink(n); ok {
					*out = append(*out, link)
				}
				return

			case "dl":
				if !pendingFolder {
					for c := n.FirstChild; c != nil; c = c.NextSibling {
						parse(c, out)
					}
					return
				}
				pendingFolder = false
				var children []any
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c, &children)
				}
				pendingFolder = false
				if len(children) > 0 {
					*out = append(*out, children)
				}
				return

			case "ul", "ol":
				*out = append(*out, parseList(n)...)
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c, out)
		}
	}

	parse(doc, &out)
	return out, nil
}

// parseList converts the <li> children of a <ul> or <ol>.
func parseList(n *html.Node) []any {
	var out []any
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || strings.ToLower(c.Data) != "li" {
			continue
		}
		entry, children := parseListItem(c)
		if entry == nil {
			// An item with only a nested list keeps its children at this level.
			out = append(out, children...)
			continue
		}
		out = append(out, entry)
		if len(children) > 0 {
			out = append(out, children)
		}
	}
	return out
}

// parseListItem returns the entry of an <li> and its nested list, if any.
func parseListItem(li *html.Node) (any, []any) {
	var text strings.Builder
	var link *Link
	var children []any

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			text.WriteString(n.Data)
			return
		case n.Type != html.ElementNode:
		case isList(n):
			children = append(children, parseList(n)...)
			return
		case strings.ToLower(n.Data) == "a" && link == nil:
			if l, ok := parseLink(n); ok {
				link = &l
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	if link != nil {
		return *link, children
	}
	if t := strings.Join(strings.Fields(text.String()), " "); t != "" {
		return t, children
	}
	return nil, children
}

func isList(n *html.Node) bool {
	switch strings.ToLower(n.Data) {
	case "ul", "ol":
		return true
	}
	return false
}

// parseLink reads an anchor element. Anchors without href are skipped.
func parseLink(n *html.Node) (Link, bool) {
	href := getAttr(n, "href")
	if href == "" {
		return Link{}, false
	}

	title := getTextContent(n)
	if title == "" {
		title = href // fallback to URL as title
	}

	link := Link{Title: title, URL: href}
	if addDate := getAttr(n, "add_date"); addDate != "" {
		if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
			link.Added = time.Unix(ts, 0)
		}
	}
	return link, true
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
