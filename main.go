package main

import (
	"cmakewrap/cmd"
)

func main() {
	cmd.Execute()
}
