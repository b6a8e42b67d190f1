package main

import "crime-report/cmd"

func main() {
	cmd.Execute()
}
