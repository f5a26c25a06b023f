package main

import "github.com/DominicWuest/issuebisect/cmd"

func main() {
	cmd.Execute()
}
