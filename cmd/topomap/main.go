package main

import "topomap/internal/cli"

func main() {
	cli.Execute()
}
