// Package config persists user settings in a TOML file read and written
// through a dedicated viper instance.
//
// The file lives at ~/.config/hookplayer/config.toml unless HOOKPLAYER_CONFIG
// names another path. Keys:
//
//	sounds_dir    directory packs are installed into (default ~/.config/hookplayer/sounds)
//	volume        playback volume, 0.0 to 1.0 (default 0.5)
//	registry_url  pack registry index URL
//	mirror        release asset mirror for self-update
//	[events]      event name -> list of "pack/file" sound paths
//	[categories]  category id -> event name overrides
//
// The key delimiter is "::" so category ids such as "task.complete" stay
// single keys. Keys are case-insensitive to viper, so Load rejects
// [categories] entries that are not already lower case.
package config
