package main

import "github.com/tbenitez/epifetch/cmd"

func main() {
	cmd.Execute()
}
