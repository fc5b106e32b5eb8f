package verifier

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/corvid-labs/tableau/pkg/diag"
	"github.com/corvid-labs/tableau/pkg/parser"
	"github.com/corvid-labs/tableau/pkg/ts"
	"github.com/google/uuid"
)

// Query is one line of a query batch: a formula, and, for per-start-state
// queries (section 6.2, item 3), the node id the TS should be re-rooted to
// before verification.
type Query struct {
	Formula       string
	StartOverride *int
}

// Batch is a parsed query batch: global queries (run against the TS as
// given) followed by per-start-state queries (run against a re-rooted
// copy).
type Batch struct {
	Global        []Query
	PerStartState []Query
}

// Queries returns every query in the batch, global queries first, in file
// order -- the order verdicts must be printed in.
func (b *Batch) Queries() []Query {
	out := make([]Query, 0, len(b.Global)+len(b.PerStartState))
	out = append(out, b.Global...)
	out = append(out, b.PerStartState...)
	return out
}

// LoadQueryBatch reads a query batch from r per section 6.2:
//
//	1. "N M"              -- global query count, per-start query count
//	2. N lines of formula  -- global queries
//	3. M lines "id phi"    -- per-start-state queries
func LoadQueryBatch(r io.Reader) (*Batch, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !sc.Scan() {
		return nil, fmt.Errorf("%w: empty query batch, expected \"N M\"", diag.ErrMalformedToken)
	}
	n, m, err := parseCounts(sc.Text())
	if err != nil {
		return nil, err
	}

	b := &Batch{}
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: expected %d global queries, found %d", diag.ErrMalformedToken, n, i)
		}
		line := strings.TrimSpace(sc.Text())
		if _, err := parser.Parse(line); err != nil {
			return nil, fmt.Errorf("global query %d: %w", i, err)
		}
		b.Global = append(b.Global, Query{Formula: line})
	}
	for i := 0; i < m; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: expected %d per-start-state queries, found %d", diag.ErrMalformedToken, m, i)
		}
		line := strings.TrimSpace(sc.Text())
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: per-start-state query %d: expected \"id phi\", got %q", diag.ErrMalformedToken, i, line)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: per-start-state query %d id %q: %s", diag.ErrMalformedToken, i, fields[0], err)
		}
		if _, err := parser.Parse(fields[1]); err != nil {
			return nil, fmt.Errorf("per-start-state query %d: %w", i, err)
		}
		b.PerStartState = append(b.PerStartState, Query{Formula: fields[1], StartOverride: &id})
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", diag.ErrFileOpen, err)
	}
	return b, nil
}

// parseCounts parses a leading "N M" line, reusing the same strict grammar
// as pkg/ts's section 6.1 loader.
func parseCounts(line string) (n, m int, err error) {
	f := strings.Fields(line)
	if len(f) != 2 {
		return 0, 0, fmt.Errorf("%w: expected \"N M\", got %q", diag.ErrMalformedToken, line)
	}
	n, err = strconv.Atoi(f[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: global query count %q: %s", diag.ErrMalformedToken, f[0], err)
	}
	m, err = strconv.Atoi(f[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: per-start query count %q: %s", diag.ErrMalformedToken, f[1], err)
	}
	return n, m, nil
}

// RunBatch runs every query in b against tsys, in file order (global
// queries, then per-start-state queries re-rooting a copy of tsys each
// time), and returns one verdict per query in that order. Each query is
// logged with a correlation id and elapsed time.
func RunBatch(tsys *ts.TS, b *Batch, verbose bool) ([]bool, error) {
	var verdicts []bool
	for _, q := range b.Global {
		v, err := runOne(tsys, q, verbose)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, v)
	}
	for _, q := range b.PerStartState {
		rerooted := tsys.WithInitial(*q.StartOverride)
		v, err := runOne(rerooted, q, verbose)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, v)
	}
	return verdicts, nil
}

func runOne(tsys *ts.TS, q Query, verbose bool) (bool, error) {
	id := uuid.New()
	start := time.Now()
	verdict, stats, err := VerifyWithStats(tsys, q.Formula)
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("query=%s formula=%q error=%s elapsed=%s", id, q.Formula, err, elapsed)
		return false, err
	}
	verdictInt := 0
	if verdict {
		verdictInt = 1
	}
	log.Printf("query=%s formula=%q verdict=%d elapsed=%s", id, q.Formula, verdictInt, elapsed)
	if verbose {
		log.Printf("query=%s normalized=%s closure=%d elementary_sets=%d gnba_states=%d nba_states=%d product_states=%d",
			id, stats.Normalized, stats.ClosureSize, stats.ElementarySets, stats.GNBAStates, stats.NBAStates, stats.ProductStates)
	}
	return verdict, nil
}
