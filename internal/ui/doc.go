// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for movie browsing:
//  1. [BrowseView] : Page through now-playing or popular movies and toggle wishlist membership
//  2. [WishlistView] : Review the signed-in user's wishlist, resolved against the catalog
//  3. [DetailView] : Inspect a single movie's overview and ratings
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Wishlist resolution runs through the tasks.Engine with progress updates flowing
// over a channel, providing non-blocking status reporting.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, w, tab, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
