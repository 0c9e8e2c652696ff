package cue_test

import (
	"testing"

	"github.com/plus3/rechthoek/cue"
	"github.com/stretchr/testify/assert"
)

func TestQueueDrainsInOrder(t *testing.T) {
	var q cue.Queue
	q.Push(cue.RoundStart)
	q.Push(cue.Extinguish)
	assert.Equal(t, 2, q.Len())

	assert.Equal(t, []cue.Cue{cue.RoundStart, cue.Extinguish}, q.Drain())
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Drain())
}

func TestNilQueueIgnoresPush(t *testing.T) {
	var q *cue.Queue
	assert.NotPanics(t, func() { q.Push(cue.CloudBurst) })
}

func TestCueNames(t *testing.T) {
	assert.Equal(t, "extinguish", cue.Extinguish.String())
	assert.Equal(t, "cloud-burst", cue.CloudBurst.String())
	assert.Equal(t, "Cue(9)", cue.Cue(9).String())
}
