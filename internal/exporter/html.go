package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/lister/internal/importer"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/lister-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("lister-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML writes a nested sequence, as returned by
// model.Store.GetAllDataTree, in Netscape bookmark HTML format. Links
// become anchors; every other entry becomes a folder heading holding the
// nested list that follows it.
func ExportHTML(data []any, title string) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	fmt.Fprintf(&b, "<TITLE>%s</TITLE>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<H1>%s</H1>\n", html.EscapeString(title))
	b.WriteString("<DL><p>\n")

	writeItems(&b, data, 1)

	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeItems recursively writes the entries of one nesting level.
func writeItems(b *strings.Builder, data []any, indent int) {
	prefix := strings.Repeat("    ", indent)

	for i := 0; i < len(data); i++ {
		var children []any
		if i+1 < len(data) {
			children, _ = data[i+1].([]any)
		}

		switch v := data[i].(type) {
		case []any:
			// A sublist without a parent entry stays at this level.
			writeItems(b, v, indent)
			continue

		case importer.Link:
			if v.Added.IsZero() {
				fmt.Fprintf(b, "%s<DT><A HREF=\"%s\">%s</A>\n", prefix, html.EscapeString(v.URL), html.EscapeString(v.Title))
			} else {
				fmt.Fprintf(b,
					"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
					prefix,
					html.EscapeString(v.URL),
					v.Added.Unix(),
					html.EscapeString(v.Title),
				)
			}
			if children == nil {
				continue
			}
			// Links cannot hold a list; their children follow as a folder.
			fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(v.Title))

		default:
			fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(fmt.Sprint(v)))
			if children == nil {
				continue
			}
		}

		fmt.Fprintf(b, "%s<DL><p>\n", prefix)
		writeItems(b, children, indent+1)
		fmt.Fprintf(b, "%s</DL><p>\n", prefix)
		i++ // children consumed
	}
}
