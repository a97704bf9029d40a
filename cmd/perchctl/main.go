package main

import "Perch/internal/cli"

func main() {
	cli.Execute()
}
