package main

import "secure-file-server/cmd"

func main() {
	cmd.Execute()
}
