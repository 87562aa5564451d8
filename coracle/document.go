// Package coracle writes and reads the JSON configuration consumed by the Coracle consensus simulator.
package coracle

import (
	"github.com/encodeous/topogen/state"
)

const (
	TypeServer = "server"
	TypeHub    = "hub"

	DirectionBi = "bi"
	// LinkTypeS is the link class the simulator uses for ordinary radio links
	LinkTypeS = "s"
)

type Document struct {
	Termination int       `json:"termination"`
	Consensus   Consensus `json:"consensus"`
	Network     Network   `json:"network"`
}

type Consensus struct {
	Protocol           string `json:"protocol"`
	ElectionTimeoutMin int    `json:"election_timeout_min"`
	ElectionTimeoutMax int    `json:"election_timeout_max"`
	HeartbeatInterval  int    `json:"heartbeat_interval"`
}

type Network struct {
	Nodes  []Node  `json:"nodes"`
	Links  []Link  `json:"links"`
	Events []Event `json:"events"`
}

type Node struct {
	Type string `json:"type"`
	Id   int    `json:"id"`
}

type Link struct {
	Start     int     `json:"start"`
	End       int     `json:"end"`
	Id        int     `json:"id"`
	Direction string  `json:"direction"`
	Distance  float64 `json:"distance"`
}

// Event sets the state of some links and nodes at a simulation time
type Event struct {
	Time  int         `json:"time"`
	Links []LinkState `json:"links"`
	Nodes []NodeState `json:"nodes"`
}

type LinkState struct {
	Id     int    `json:"id"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

type NodeState struct {
	Id     int  `json:"id"`
	Active bool `json:"active"`
}

func consensusOf(cfg state.ConsensusCfg) Consensus {
	return Consensus{
		Protocol:           cfg.Protocol,
		ElectionTimeoutMin: cfg.ElectionTimeoutMin,
		ElectionTimeoutMax: cfg.ElectionTimeoutMax,
		HeartbeatInterval:  cfg.HeartbeatInterval,
	}
}

func (d *Document) Servers() []Node {
	return d.nodesOf(TypeServer)
}

func (d *Document) Hubs() []Node {
	return d.nodesOf(TypeHub)
}

func (d *Document) nodesOf(typ string) []Node {
	out := make([]Node, 0)
	for _, n := range d.Network.Nodes {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}
