package module

import "shulzmanim/internal/platform/config"

// Options for the zmanim module
type Options struct {
	MaxRangeDays int
	InsertChunk  int
}

// FromConfig fills options from environment
// CORE_ZMANIM_MAX_RANGE_DAYS (default 366) caps GET /zmanim?start&end
// CORE_ZMANIM_INSERT_CHUNK (default 500) is the number of rows per INSERT statement
func FromConfig(cfg config.Conf) Options {
	z := cfg.Prefix("CORE_ZMANIM_")
	return Options{
		MaxRangeDays: z.MayInt("MAX_RANGE_DAYS", 366),
		InsertChunk:  z.MayInt("INSERT_CHUNK", 500),
	}
}
