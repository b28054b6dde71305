package main

import "elliott/internal/cli"

func main() {
	cli.Execute()
}
