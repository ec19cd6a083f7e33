// Package data provides embedded game data and utilities for loading it.
package data

import "embed"

// dataFS embeds the word list at build time.
//
//go:embed words.txt
var dataFS embed.FS

// WordsFile is the name of the embedded five-letter word list.
const WordsFile = "words.txt"

// FS returns the embedded filesystem containing game data.
func FS() embed.FS {
	return dataFS
}
