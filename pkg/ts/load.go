package ts

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/corvid-labs/tableau/pkg/diag"
)

// Load reads a TS from r in the format described by section 6.1:
//
//	1. "N M"                       -- node count, transition count
//	2. initial node ids             -- space-separated
//	3. AP identifiers                -- space-separated, lowercase
//	4. M lines "from action to"     -- only from/to are kept
//	5. N lines of AP indices         -- -1 marks "no AP here"
func Load(r io.Reader) (*TS, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line, ok := next(sc)
	if !ok {
		return nil, fmt.Errorf("%w: empty TS input, expected \"N M\"", diag.ErrMalformedToken)
	}
	n, m, err := parseCounts(line)
	if err != nil {
		return nil, err
	}

	line, _ = next(sc)
	initials, err := parseIntList(line)
	if err != nil {
		return nil, fmt.Errorf("%w: initial node list: %s", diag.ErrMalformedToken, err)
	}

	line, _ = next(sc)
	apNames := fields(line)

	t := &TS{
		Nodes: make([]Node, n),
		adj:   make([][]int, n),
		AP:    apNames,
	}
	for i := range t.Nodes {
		t.Nodes[i] = Node{ID: i, AP: map[string]bool{}}
	}
	for _, id := range initials {
		if id < 0 || id >= n {
			return nil, fmt.Errorf("%w: initial node id %d out of range [0,%d)", diag.ErrMalformedToken, id, n)
		}
		t.Nodes[id].Initial = true
	}

	for i := 0; i < m; i++ {
		line, ok := next(sc)
		if !ok {
			return nil, fmt.Errorf("%w: expected %d transition lines, found %d", diag.ErrMalformedToken, m, i)
		}
		from, to, err := parseTransition(line)
		if err != nil {
			return nil, err
		}
		if from < 0 || from >= n || to < 0 || to >= n {
			return nil, fmt.Errorf("%w: transition %d->%d references a node outside [0,%d)", diag.ErrMalformedToken, from, to, n)
		}
		dup := false
		for _, w := range t.adj[from] {
			if w == to {
				dup = true
				break
			}
		}
		if !dup {
			t.adj[from] = append(t.adj[from], to)
		}
	}

	for i := 0; i < n; i++ {
		line, ok := next(sc)
		if !ok {
			return nil, fmt.Errorf("%w: expected %d node label lines, found %d", diag.ErrMalformedToken, n, i)
		}
		idxs, err := parseIntList(line)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d label list: %s", diag.ErrMalformedToken, i, err)
		}
		for _, idx := range idxs {
			if idx == -1 {
				continue
			}
			if idx < 0 || idx >= len(apNames) {
				return nil, fmt.Errorf("%w: node %d references AP index %d out of range [0,%d)", diag.ErrMalformedToken, i, idx, len(apNames))
			}
			t.Nodes[i].AP[apNames[idx]] = true
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", diag.ErrFileOpen, err)
	}
	return t, nil
}

// next returns the scanner's next line with any trailing carriage return
// removed, or ok=false at EOF. Blank lines are returned as they are, so an
// empty AP list or label line still occupies its place in the format.
func next(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		return line, true
	}
	return "", false
}

func fields(s string) []string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return nil
	}
	return f
}

func parseCounts(line string) (n, m int, err error) {
	f := fields(line)
	if len(f) != 2 {
		return 0, 0, fmt.Errorf("%w: expected \"N M\", got %q", diag.ErrMalformedToken, line)
	}
	n, err = strconv.Atoi(f[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: node count %q: %s", diag.ErrMalformedToken, f[0], err)
	}
	m, err = strconv.Atoi(f[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: transition count %q: %s", diag.ErrMalformedToken, f[1], err)
	}
	return n, m, nil
}

func parseIntList(line string) ([]int, error) {
	f := fields(line)
	out := make([]int, 0, len(f))
	for _, s := range f {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseTransition(line string) (from, to int, err error) {
	f := fields(line)
	if len(f) != 3 {
		return 0, 0, fmt.Errorf("%w: expected \"from action to\", got %q", diag.ErrMalformedToken, line)
	}
	from, err = strconv.Atoi(f[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: transition source %q: %s", diag.ErrMalformedToken, f[0], err)
	}
	to, err = strconv.Atoi(f[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: transition target %q: %s", diag.ErrMalformedToken, f[2], err)
	}
	return from, to, nil
}
