package main

import "github.com/finassist/finassist/cmd"

func main() {
	cmd.Execute()
}
