package redis_test

import (
	"context"
	"testing"

	"github.com/fwojciec/scout"
	scoutredis "github.com/fwojciec/scout/redis"
	"github.com/stretchr/testify/assert"
)

func TestNewClient_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := scoutredis.NewClient(context.Background(), "not a url")

	assert.Equal(t, scout.EINVALID, scout.ErrorCode(err))
}
