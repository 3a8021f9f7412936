package main

import "staywatch/cmd/staywatchctl/cmd"

func main() {
	cmd.Execute()
}
