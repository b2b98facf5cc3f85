// Command draw runs a gift exchange draw from a YAML file and prints who gives
// to whom. It does not touch the server's store.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"giftexchange/internal/matcher"
)

const (
	exitOK         = 0
	exitInfeasible = 2
	exitUsage      = 64
)

// settings are read from DRAW_SEED, DRAW_MAX_STEPS and NO_COLOR; flags override them.
type settings struct {
	Seed     int64 `envconfig:"DRAW_SEED"`
	MaxSteps int   `envconfig:"DRAW_MAX_STEPS" default:"1000000"`
	NoColor  bool  `envconfig:"NO_COLOR"`
}

var errInfeasible = errors.New("could not find a valid assignment with these exclusions")

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprint(err))
	}
	os.Exit(code)
}

func run(args []string, stdout io.Writer) (int, error) {
	var s settings
	if err := envconfig.Process("", &s); err != nil {
		return exitUsage, fmt.Errorf("environment: %w", err)
	}

	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	path := fs.String("f", "", "YAML exchange file (participants, exclusions)")
	seed := fs.Int64("seed", s.Seed, "random seed; 0 picks one from the clock")
	maxSteps := fs.Int("max-steps", s.MaxSteps, "search budget; <= 0 removes the bound")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}
	if *path == "" {
		return exitUsage, errors.New("-f is required")
	}
	if s.NoColor {
		color.Enable = false
	}

	file, err := os.Open(*path)
	if err != nil {
		return exitUsage, err
	}
	defer file.Close()

	exchange, err := loadExchangeFile(file)
	if err != nil {
		return exitUsage, err
	}
	for _, name := range exchange.unknownNames() {
		fmt.Fprint(stdout, color.Yellow.Sprintf("ignoring exclusion for unknown participant %q\n", name))
	}

	opts := []matcher.Option{matcher.WithMaxSteps(*maxSteps)}
	if *seed != 0 {
		opts = append(opts, matcher.WithSeed(*seed))
	}
	assignment, ok := matcher.New(opts...).Match(exchange.Participants, exchange.exclusions())
	if !ok {
		return exitInfeasible, errInfeasible
	}

	printAssignment(stdout, exchange.Participants, assignment)
	fmt.Fprint(stdout, color.Green.Sprintf("%d participants drawn\n", len(assignment)))
	return exitOK, nil
}

func printAssignment(w io.Writer, participants []string, assignment matcher.Assignment) {
	givers := make([]string, 0, len(assignment))
	for giver := range assignment {
		givers = append(givers, giver)
	}
	order := make(map[string]int, len(participants))
	for i, name := range participants {
		if _, ok := order[name]; !ok {
			order[name] = i
		}
	}
	sort.Slice(givers, func(i, j int) bool { return order[givers[i]] < order[givers[j]] })

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Giver", "Receiver"})
	for _, giver := range givers {
		table.Append([]string{giver, assignment[giver]})
	}
	table.Render()
}
