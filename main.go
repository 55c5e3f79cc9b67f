package main

import "unblinkingbot/cmd"

func main() {
	cmd.Execute()
}
