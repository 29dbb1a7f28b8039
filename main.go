package main

import "note-taking-api/cmd"

func main() {
	cmd.Execute()
}
