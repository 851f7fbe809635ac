package main

import "pixpress/internal/cli"

func main() {
	cli.Execute()
}
