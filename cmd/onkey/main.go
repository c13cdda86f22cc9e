package main

import "github.com/jwulff/onkey/internal/cli"

func main() {
	cli.Execute()
}
