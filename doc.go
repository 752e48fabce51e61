// Package main implements quartiles, a CLI that solves Quartiles word
// puzzles.
//
// A puzzle is a board of short letter fragments (tiles). Every word made by
// joining one to four distinct tiles in some order scores, and the solver
// lists all of them, grouped by how many tiles they use.
//
// # Features
//
//   - Exhaustive search over ordered tile groupings with a stable witness
//     grouping per word
//   - TWL06 word list, downloaded once and cached on disk
//   - Review tags for likely abbreviations ("rec", "hm")
//   - Tile extraction from screenshots via tesseract or an OpenAI-compatible
//     vision model
//   - An MCP tool server exposing the solver to agents
//
// # Usage
//
//	quartiles [solve] [IMAGE] [--tiles LIST] [--min-length N] [--json]
//	quartiles init [--config PATH]
//	quartiles serve [--config PATH]
//
// # Configuration
//
// Configuration is loaded from quartiles.json in the current directory or
// the directory named by the QUARTILES_HOME environment variable. A missing
// file means defaults.
package main
