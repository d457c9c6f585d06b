package main

import "github.com/craftpkg/craftpkg/cmd"

func main() {
	cmd.Execute()
}
