package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnStateJoinAndLeave(t *testing.T) {
	s := NewConnState()
	assert.Equal(t, PhaseConnected, s.Phase())

	prev, ok := s.Join("doc-1")
	assert.True(t, ok)
	assert.Empty(t, prev)
	assert.Equal(t, PhaseJoined, s.Phase())
	assert.Equal(t, "doc-1", s.Document())

	assert.True(t, s.Leave("doc-1"))
	assert.Equal(t, PhaseConnected, s.Phase())
	assert.Empty(t, s.Document())
}

func TestConnStateJoinReportsPrevious(t *testing.T) {
	s := NewConnState()

	s.Join("doc-1")
	prev, ok := s.Join("doc-2")
	assert.True(t, ok)
	assert.Equal(t, "doc-1", prev)
	assert.Equal(t, "doc-2", s.Document())
}

func TestConnStateLeaveWrongDocumentIsNoop(t *testing.T) {
	s := NewConnState()

	s.Join("doc-1")
	assert.False(t, s.Leave("doc-2"))
	assert.Equal(t, "doc-1", s.Document())
}

func TestConnStateLeaveWhenNotJoinedIsNoop(t *testing.T) {
	s := NewConnState()
	assert.False(t, s.Leave("doc-1"))
}

func TestConnStateCloseRunsOnce(t *testing.T) {
	s := NewConnState()
	s.Join("doc-1")

	doc, wasJoined, first := s.Close()
	assert.True(t, first)
	assert.True(t, wasJoined)
	assert.Equal(t, "doc-1", doc)

	_, _, second := s.Close()
	assert.False(t, second)
}

func TestConnStateJoinAfterCloseRejected(t *testing.T) {
	s := NewConnState()
	s.Close()

	_, ok := s.Join("doc-1")
	assert.False(t, ok)
	assert.Equal(t, PhaseClosed, s.Phase())
}
