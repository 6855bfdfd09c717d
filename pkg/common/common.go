package common

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// UUIDint64 returns a cluster-unique int64 identifier.
// The worker id is taken from LINKIT_WORKER_ID when set so multiple
// instances do not collide.
func UUIDint64() int64 {
	snowflakeOnce.Do(func() {
		workerID := int64(1)
		if v := os.Getenv("LINKIT_WORKER_ID"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 && n < 1024 {
				workerID = n
			}
		}
		node, err := snowflake.NewNode(workerID)
		if err != nil {
			zap.S().Errorf("snowflake node init failed: %v", err)
			node, _ = snowflake.NewNode(1)
		}
		snowflakeNode = node
	})
	return snowflakeNode.Generate().Int64()
}
