package main

import "github.com/zjrosen/ngsteer/cmd"

func main() {
	cmd.Execute()
}
