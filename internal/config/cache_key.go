package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RunKey returns the cache key for a processed run
func (r *CacheKeyStruct) RunKey(runID string) string {
	return fmt.Sprintf("run:%s", runID)
}

var CacheKey = NewCacheKeyStruct()
