package main

import "github.com/spec-kit/spoc-booking/internal/cli"

func main() {
	cli.Execute()
}
