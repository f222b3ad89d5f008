// Command evefrontier is the CLI entry point for route planning and
// scouting over the EVE Frontier star map.
package main

import (
	"github.com/Scetrov/evefrontier-routecore/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
