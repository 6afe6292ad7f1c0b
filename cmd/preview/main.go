package main

import (
	"fmt"
	"io"
	"os"

	"vedomist/roster"
)

// Reads pasted roster text from stdin and prints what the parser made of it.
// Handy for checking a messy paste before running the full export.
func main() {
	bytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		panic(err)
	}

	employees := roster.Parse(string(bytes))
	if len(employees) == 0 {
		fmt.Println("no employees parsed")
		return
	}

	group := ""
	for _, e := range employees {
		if e.Group != group {
			group = e.Group
			fmt.Printf("== %s\n", group)
		}

		fmt.Printf("%3d. %-30s %-18s %-10s %s\n", e.Order, e.Name, e.Position, e.RateType, e.RateDisplay())
	}
}
