package main

import "github.com/yatube/yatube/cmd/yatube/commands"

func main() {
	commands.Execute()
}
