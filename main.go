package main

import "QNNLogParser/pkg/commands"

func main() {
	commands.Execute()
}
