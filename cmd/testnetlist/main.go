package main

import "github.com/OpenTraceLab/testnetlist/cmd/testnetlist/cmd"

func main() {
	cmd.Execute()
}
