package main

import "github.com/mcoot/lobbyregistry/internal/cli"

func main() {
	cli.Execute()
}
