package main

import "github.com/secscope/secscope/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
