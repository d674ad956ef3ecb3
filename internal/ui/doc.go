// Package ui renders update prompts in the terminal: a modal dialog, a
// bottom-right banner, and desktop notifications. Model hosts them inside a
// bubbletea program; WriterPresenter prints them for plain CLI hosts.
package ui
