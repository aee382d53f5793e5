package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// DocumentStatusChannel returns the Redis PubSub channel name for a
// document's extraction status updates.
func (r *CacheKeyStruct) DocumentStatusChannel(documentID string) string {
	return fmt.Sprintf("document:%s:status", documentID)
}

var CacheKey = NewCacheKeyStruct()
