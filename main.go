package main

import "github.com/notargets/scaffoldgroup/cmd"

func main() {
	cmd.Execute()
}
