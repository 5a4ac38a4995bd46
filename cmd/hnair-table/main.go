package main

import "github.com/hanair-data/hnair-table/internal/cli"

func main() {
	cli.Execute()
}
