package main

import "github.com/GothamSiteStudio/picture-auto-edit/cmd"

func main() {
	cmd.Execute()
}
