// Package listview provides a scrolling, selectable list component for
// Bubble Tea programs. Only the rows inside the viewport, plus a small
// buffer, are rendered.
package listview
