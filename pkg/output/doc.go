// Package output renders command results for the terminal.
//
// Rendering has two parts: text/template files embedded from templates/
// lay out the result, and the "style" template function applies the
// semantic lipgloss styles from the styles package. Color is decided once
// per renderer: "never" and "always" are explicit, "auto" colors only a
// terminal and honors NO_COLOR.
package output
