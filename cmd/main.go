package main

import "hospital-portal/cmd/commands"

func main() {
	commands.Execute()
}
