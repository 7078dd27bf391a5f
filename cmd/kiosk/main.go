package main

import "github.com/marshallshelly/storekiosk/cmd/kiosk/commands"

func main() {
	commands.Execute()
}
