package todo

import "github.com/dustin/go-humanize/english"

// ItemsLeft renders the active counter: "1 item left", "3 items left".
func ItemsLeft(n int) string {
	return english.Plural(n, "item", "items") + " left"
}
