// cubeanim - animates the solving of a Rubik's cube one face turn at a time.
package main

import (
	"github.com/SeamusWaldron/cubeanim/internal/cli"
)

func main() {
	cli.Execute()
}
