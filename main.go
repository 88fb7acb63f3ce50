package main

import "kaylife/kaydash/cmd"

func main() {
	cmd.Execute()
}
