// Package main provides the entry point for the proxyspray CLI.
//
// Proxyspray determines whether upstream HTTP/S proxies will forward
// requests to upstream targets.
//
// Usage:
//
//	proxyspray spray --proxy-urls http://127.0.0.1:8080 --targets example.com
//	proxyspray spray -p proxies.txt -t 10.0.0.0/28 --display-failures
//
// See --help for all available options.
package main

// main is the entry point for proxyspray.
func main() {
	Execute()
}
