package main

import "github.com/statsmaths/fasttextm/internal/cli"

func main() {
	cli.Execute()
}
