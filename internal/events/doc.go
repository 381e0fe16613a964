// Package events owns the tool's fixed event vocabulary, the table that
// translates upstream pack categories into it, and the builder that merges
// several packs into a single EventMap.
package events
