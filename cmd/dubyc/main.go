package main

import "github.com/funvibe/dubyc/cmd/dubyc/commands"

func main() {
	commands.Execute()
}
