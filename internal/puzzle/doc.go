// Package puzzle downloads a problem's input when start-solve scaffolds a
// crate. The URL comes from a user-configured template and the request
// carries the user's session cookie.
package puzzle
