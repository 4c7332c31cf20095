// Command querychat is a terminal client for a question answering chatbot.
package main

import "github.com/diogo/querychat/internal/commands"

func main() {
	commands.Execute()
}
