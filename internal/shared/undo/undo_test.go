package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog_RollbackRunsNewestFirst(t *testing.T) {
	var order []int
	log := &Log{}
	log.Record(func() { order = append(order, 1) })
	log.Record(func() { order = append(order, 2) })
	log.Record(nil)
	assert.Equal(t, 2, log.Len())

	log.Rollback()
	assert.Equal(t, []int{2, 1}, order)
	assert.Zero(t, log.Len())

	log.Rollback()
	assert.Equal(t, []int{2, 1}, order)
}

func TestLog_NilIsNoop(t *testing.T) {
	var log *Log
	log.Record(func() { t.Fatal("must not run") })
	log.Rollback()
	assert.Zero(t, log.Len())
}
