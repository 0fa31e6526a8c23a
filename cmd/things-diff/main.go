package main

import "github.com/goblinsan/things-diff/cmd/things-diff/commands"

func main() {
	commands.Execute()
}
