package importer

import (
	"bufio"
	"io"
	"strings"

	"github.com/nikbrunner/lister/internal/tree"
)

// tabWidth is the indentation a tab counts for.
const tabWidth = 4

// ParseOutline reads an indented plain text outline, one item per line.
// A line nests under the nearest preceding line that is indented less.
// Blank lines are skipped.
func ParseOutline(r io.Reader) ([]any, error) {
	var entries []tree.Entry[any]

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		entries = append(entries, tree.Entry[any]{Value: text, Level: indentOf(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tree.Nest(tree.Outdent(tree.Wrap(entries))), nil
}

func indentOf(line string) int {
	n := 0
	for _, c := range line {
		switch c {
		case ' ':
			n++
		case '\t':
			n += tabWidth
		default:
			return n
		}
	}
	return n
}
