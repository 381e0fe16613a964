// Package registry talks to the community pack registry. It fetches the
// global index, resolves pack names to their source coordinates, derives a
// pack's raw-content base URL, and fetches and validates its manifest.
// Nothing here is cached; every command works from a fresh index.
package registry
