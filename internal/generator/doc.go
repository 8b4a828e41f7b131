// Package generator composes synthetic log lines from word banks and sentence
// templates.
//
// A Generator validates its templates at construction, so every later call to
// Line, Generate, or Sentence is total: placeholders always resolve and each
// sentence keeps the punctuation embedded in its template. Seeding the random
// source makes the output deterministic.
package generator
