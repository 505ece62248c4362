package main

import "github.com/jsphweid/maestro/cmd"

func main() {
	cmd.Execute()
}
