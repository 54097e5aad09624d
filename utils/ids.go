package utils

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewID returns a prefixed, globally unique KSUID based identifier (e.g. "furn_2Nf...")
func NewID(prefix string) string {
	id := ksuid.New().String()
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

var (
	snowflakeOnce sync.Once
	snowflakeNode *snowflake.Node
)

// NewSequentialID returns a time-ordered snowflake id. Falls back to a KSUID if the node cannot be created.
func NewSequentialID() string {
	snowflakeOnce.Do(func() {
		node, err := snowflake.NewNode(1)
		if err == nil {
			snowflakeNode = node
		}
	})
	if snowflakeNode == nil {
		return ksuid.New().String()
	}
	return snowflakeNode.Generate().String()
}
