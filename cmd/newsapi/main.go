// Command newsapi runs the news aggregator HTTP API and its maintenance
// tasks.
//
//	@title			News API
//	@version		1.0
//	@description	Topics, articles, comments and users over a relational store.
//	@BasePath		/api
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
