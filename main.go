package main

import "github.com/Norgate-AV/cargo-payload/cmd"

func main() {
	cmd.Execute()
}
