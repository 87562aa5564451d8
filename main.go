package main

import "github.com/encodeous/topogen/cmd"

func main() {
	cmd.Execute()
}
