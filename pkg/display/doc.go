// Package display renders merge results for people and for programs.
//
// A Renderer is picked from a Format: term draws a lipgloss-styled summary,
// text prints the same summary without styling, and json, yaml and xml emit
// a Summary for scripts. FormatAuto chooses term or text from the output
// stream and the NO_COLOR convention.
package display
