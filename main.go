package main

import "github.com/brogergvhs/pokepdf/cmd"

func main() {
	cmd.Execute()
}
