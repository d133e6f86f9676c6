/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/cmd"

func main() {
	cmd.Execute()
}
