package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasfixture"
	"github.com/erraggy/oasfixture/cmd/oasfixture/commands"
)

// commandNames lists the subcommands suggestCommand matches against.
var commandNames = []string{"typeof", "render", "params", "fixture", "example", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasfixture v%s\n", oasfixture.Version())
		fmt.Printf("commit: %s\nbuilt: %s\ngo: %s\n", oasfixture.Commit(), oasfixture.BuildTime(), oasfixture.GoVersion())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "typeof":
		err = commands.HandleTypeOf(os.Args[2:])
	case "render":
		err = commands.HandleRender(os.Args[2:])
	case "params":
		err = commands.HandleParams(os.Args[2:])
	case "fixture":
		err = commands.HandleFixture(os.Args[2:])
	case "example":
		err = commands.HandleExample(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oasfixture - Go client examples from OpenAPI documents

Usage:
  oasfixture <command> [options]

Commands:
  typeof      Print the Go client type of a schema
  render      Render a JSON value as a Go literal
  params      Assemble the argument list for calling an operation
  fixture     Synthesize a fixture value for a schema
  example     Generate runnable example programs from scenarios
  mcp         Serve the tools over the Model Context Protocol
  version     Show version information
  help        Show this help message

Examples:
  oasfixture typeof -schema WidgetCreateRequest openapi.yaml
  oasfixture render -schema WidgetCreateRequest -value '{"name": "gear"}' openapi.yaml
  oasfixture params -operation ListWidgets -args '{"page_size": 10}' openapi.yaml
  oasfixture fixture -schema WidgetResponse -key widget -path data.id openapi.yaml
  oasfixture example -o examples openapi.yaml scenarios/*.yaml

Environment:
  OASFIXTURE_CLIENT_PACKAGE, OASFIXTURE_API_VERSION, OASFIXTURE_CLIENT_IMPORT,
  OASFIXTURE_STRICT, OASFIXTURE_LOG_LEVEL and OASFIXTURE_LOG_FORMAT set the defaults.

Run 'oasfixture <command> --help' for more information on a command.`)
}
