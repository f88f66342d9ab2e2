package ids

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// Generator issues document identifiers and ordered sequence numbers.
type Generator interface {
	NewID() string
	NextSequence() int64
}

// NewKSUID returns a new globally unique, time sortable identifier.
func NewKSUID() string {
	return ksuid.New().String()
}

// Default combines KSUID document ids with snowflake sequences.
type Default struct {
	node *snowflake.Node
}

// New builds Default bound to snowflake node nodeID.
func New(nodeID int64) (*Default, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	return &Default{node: node}, nil
}

func (d *Default) NewID() string {
	return NewKSUID()
}

func (d *Default) NextSequence() int64 {
	return d.node.Generate().Int64()
}
