package main

import "github.com/lepinkainen/openlibrary/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
