package main

import "github.com/Ihor-Prokopenko/teams-app/internal/cli"

func main() {
	cli.Execute()
}
