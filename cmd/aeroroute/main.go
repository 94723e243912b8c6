package main

import "github.com/andrescamacho/aeroroute-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
