package main

import "hero-skill-lister/internal/cli"

func main() {
	cli.Execute()
}
