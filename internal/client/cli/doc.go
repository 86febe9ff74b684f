// Package cli implements the interactive archive console: a prompt-driven
// loop over the dossier, document and image repositories. All state lives in
// the repositories; the loop itself only parses commands and gathers input.
package cli
