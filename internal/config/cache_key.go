package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// OverviewChannel returns the Redis PubSub channel carrying overview events for an instance
func (r *CacheKeyStruct) OverviewChannel(instanceID string) string {
	return fmt.Sprintf("blindcoding:%s:overview", instanceID)
}

var CacheKey = NewCacheKeyStruct()
