/*
Tableaurepl is an interactive shell for exploring the tableau construction
one formula and one transition system at a time.

Usage:

	tableaurepl [flags]

The flags are:

	-c, --config FILE
		Read defaults from the given TOML config file.

	-f, --filename FILE
		A file containing commands to run before entering interactive mode.

Once started, type "help" for a list of commands.
*/
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/corvid-labs/tableau/pkg/automaton"
	"github.com/corvid-labs/tableau/pkg/closure"
	"github.com/corvid-labs/tableau/pkg/config"
	"github.com/corvid-labs/tableau/pkg/elementary"
	"github.com/corvid-labs/tableau/pkg/formula"
	"github.com/corvid-labs/tableau/pkg/parser"
	"github.com/corvid-labs/tableau/pkg/product"
	"github.com/corvid-labs/tableau/pkg/scc"
	"github.com/corvid-labs/tableau/pkg/ts"
	"github.com/spf13/pflag"
)

var (
	flagConfig   = pflag.StringP("config", "c", "", "TOML config file to read defaults from")
	flagFilename = pflag.StringP("filename", "f", "", "A file containing commands to run before entering interactive mode")
)

// session holds the state a tableaurepl command can see or mutate: the
// currently loaded transition system and the currently set formula, along
// with the pipeline structures built the last time "check" ran.
type session struct {
	tsys *ts.TS
	phi  formula.Formula

	explain bool

	closure *closure.Closure
	sets    []*elementary.Set
	gnba    *automaton.GNBA
	nba     *automaton.NBA
	prod    *product.Product
}

func newSession() *session {
	return &session{}
}

func (s *session) setFormula(expr string) {
	phi, err := parser.Parse(expr)
	if err != nil {
		fmt.Printf("parse error: %s\n", err)
		return
	}
	s.phi = formula.Normalize(phi)
	fmt.Printf("formula set to: %s\n", s.phi)
}

func (s *session) loadTS(path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("open error: %s\n", err)
		return
	}
	defer f.Close()

	tsys, err := ts.Load(f)
	if err != nil {
		fmt.Printf("load error: %s\n", err)
		return
	}
	s.tsys = tsys
	fmt.Printf("loaded transition system with %d states\n", tsys.NodeCount())
}

// build runs the pipeline up to (but not including) emptiness, for the
// negation of the current formula, and stashes every intermediate structure
// on s so "explain" can print it.
func (s *session) build() bool {
	if s.tsys == nil {
		fmt.Println("no transition system loaded, use 'load <file>'")
		return false
	}
	if s.phi == nil {
		fmt.Println("no formula set, use 'op <expression>'")
		return false
	}

	negated := formula.Normalize(formula.Neg(s.phi))
	s.closure = closure.Build(negated)
	s.sets = elementary.Enumerate(s.closure)
	s.gnba = automaton.BuildGNBA(s.closure, negated, s.sets)
	s.nba = automaton.Degeneralize(s.gnba)
	s.prod = product.Build(s.tsys, s.nba)
	return true
}

func (s *session) check() {
	if !s.build() {
		return
	}

	var initials []int
	for _, st := range s.prod.States {
		if st.Initial {
			initials = append(initials, st.ID)
		}
	}
	accepting := func(i int) bool { return s.prod.States[i].Accepting }
	nonEmpty := scc.EmptinessCheck(s.prod, initials, accepting)

	if nonEmpty {
		fmt.Println("violated: a counterexample trace exists")
	} else {
		fmt.Println("satisfied")
	}
	if s.explain {
		s.printExplain()
	}
}

func (s *session) printExplain() {
	fmt.Printf("  closure size:     %d\n", s.closure.Len())
	fmt.Printf("  elementary sets:  %d\n", len(s.sets))
	fmt.Printf("  GNBA states:      %d\n", len(s.gnba.States))
	fmt.Printf("  NBA states:       %d\n", len(s.nba.States))
	fmt.Printf("  product states:   %d\n", len(s.prod.States))
}

func (s *session) do(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) == 0 || line[0] == '#' {
		return true
	}
	parts := strings.SplitN(line, " ", 2)
	cmd, rest := parts[0], ""
	if len(parts) == 2 {
		rest = parts[1]
	}

	switch cmd {
	case "op":
		if rest == "" {
			fmt.Println("usage: op <expression>")
			return true
		}
		s.setFormula(rest)
	case "load":
		if rest == "" {
			fmt.Println("usage: load <file>")
			return true
		}
		s.loadTS(rest)
	case "check":
		s.check()
	case "explain":
		s.explain = !s.explain
		fmt.Printf("explain is now %v\n", s.explain)
	case "states":
		if s.tsys == nil {
			fmt.Println("no transition system loaded")
			return true
		}
		for _, n := range s.tsys.Nodes {
			var aps []string
			for name, ok := range n.AP {
				if ok {
					aps = append(aps, name)
				}
			}
			fmt.Printf("  %d: %v initial=%v\n", n.ID, aps, n.Initial)
		}
	case "goto":
		if s.tsys == nil {
			fmt.Println("no transition system loaded")
			return true
		}
		id, err := strconv.Atoi(rest)
		if err != nil || id < 0 || id >= s.tsys.NodeCount() {
			fmt.Printf("usage: goto <state id 0..%d>\n", s.tsys.NodeCount()-1)
			return true
		}
		s.tsys = s.tsys.WithInitial(id)
		fmt.Printf("re-rooted at state %d\n", id)
	case "help":
		fmt.Println(`
  op <expression>   : Parse <expression> and set it as the current formula.
  load <file>       : Load a transition system from <file>.
  goto <id>         : Re-root the loaded transition system at state <id>.
  states            : List the loaded transition system's states.
  check             : Check whether the loaded TS satisfies the current formula.
  explain           : Toggle printing of pipeline structure sizes after check.
  help              : Print this message.
  quit              : (or ctrl-D) exit tableaurepl.`)
	case "quit":
		return false
	default:
		fmt.Printf("unknown command %q, try 'help'\n", cmd)
	}
	return true
}

func main() {
	pflag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatal(err)
	}
	cfg = cfg.FillDefaults()

	s := newSession()
	s.explain = cfg.Verbose
	fmt.Println("'help' for help.")

	if *flagFilename != "" {
		f, err := os.Open(*flagFilename)
		if err != nil {
			log.Fatal(err)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			fmt.Printf("> %s\n", scanner.Text())
			if !s.do(scanner.Text()) {
				f.Close()
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Fatal(err)
		}
		f.Close()
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: "> "})
	if err != nil {
		log.Fatal(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		if !s.do(line) {
			return
		}
	}
}
