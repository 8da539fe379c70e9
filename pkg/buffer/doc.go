// Package buffer implements the text buffer of the editor.
//
// A Buffer owns a flat codepoint sequence, the line index derived from it,
// the cursor, and the path and status text shown next to it. Offsets are in
// codepoints, not bytes. Single-codepoint edits update the line index in
// place; bulk inserts (file loads, pastes) rebuild it with one rescan.
//
// Failures never escape as panics: they are turned into a status message
// and also returned for callers that want them.
package buffer
