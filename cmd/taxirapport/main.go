package main

import "github.com/taxirapport/taxirapport/internal/cli"

func main() {
	cli.Execute()
}
