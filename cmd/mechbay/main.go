package main

import "github.com/ewynne/mechbay-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
