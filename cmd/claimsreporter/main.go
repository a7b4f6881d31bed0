package main

import "github.com/GSKumar1109/claimsreporter/internal/cli"

func main() {
	cli.Execute()
}
