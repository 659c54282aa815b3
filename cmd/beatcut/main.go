package main

import "github.com/forPelevin/beatcut/internal/cli"

func main() {
	cli.Main()
}
