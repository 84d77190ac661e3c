// Package ui holds the console palette and the diagnostic logger shared by
// every command. Styled output goes to stdout; the logger writes to stderr.
package ui
