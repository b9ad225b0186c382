package main

import "github.com/kantord/cruxlines/cmd"

func main() {
	cmd.Execute()
}
