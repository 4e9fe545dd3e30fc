package main

import "skirmish/cmd/skirmish/cmd"

func main() {
	cmd.Execute()
}
