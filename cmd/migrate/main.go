package main

import "github.com/metinatakli/movie-catalog/cmd/migrate/commands"

func main() {
	commands.Execute()
}
