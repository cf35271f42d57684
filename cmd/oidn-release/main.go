package main

import "oidn-release/internal/cli"

func main() {
	cli.Execute()
}
