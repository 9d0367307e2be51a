// Package html normalises saved web pages into link source text.
// Anchor targets are surfaced next to their text, scripts and styles are
// dropped, and entities are decoded so query strings survive intact.
package html
