package main

import "github.com/martinsv/sitetrack/cmd"

func main() {
	cmd.Execute()
}
